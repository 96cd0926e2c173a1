package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

const maxChatMessage = 2000

type RouteRequest struct {
	Start           string   `json:"start"`
	Destination     string   `json:"destination"`
	ImportantPoints []string `json:"important_points"`
}

func (req *RouteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Start, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Destination, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.ImportantPoints, validation.Length(0, 20), validation.Each(validation.Length(0, 200))),
	)
}

func (req *RouteRequest) ToDomain() domain.RouteRequest {
	return domain.RouteRequest{
		Start:       req.Start,
		Destination: req.Destination,
		Waypoints:   req.ImportantPoints,
	}
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (req *ChatRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.RuneLength(1, maxChatMessage)),
	)
}
