package response

import (
	"time"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

type LoginResponse struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
	Redirect  string      `json:"redirect"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StockResponse struct {
	Message string             `json:"message"`
	Stock   domain.StockRecord `json:"stock"`
}

type SaleResponse struct {
	Message string            `json:"message"`
	Sale    domain.SaleRecord `json:"sale"`
}

type AnalysisResponse struct {
	domain.InventoryAnalysis
	AnalysisError string `json:"analysis_error,omitempty"`
}

type RouteResponse struct {
	RouteInfo string `json:"route_info"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type DashboardResponse struct {
	Profile  domain.Profile       `json:"profile"`
	Stocks   []domain.StockRecord `json:"stocks,omitempty"`
	Sessions []domain.UserSessionStatus `json:"sessions,omitempty"`
}

// ChatFrame is one websocket message sent back to a chat client.
type ChatFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
