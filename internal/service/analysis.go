package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/advisor"
)

var ErrAnalysisDataUnavailable = errors.New("inventory data unavailable")

const (
	analysisSystemPrompt = "You are an AI assistant specialized in inventory management and business analysis. " +
		"Provide concise responses in markdown format."
	analysisMaxTokens   = 1000
	analysisTemperature = 0.7
)

type AnalyticsRepository interface {
	ProductSales(ctx context.Context) ([]domain.ProductSales, error)
	DailySales(ctx context.Context) ([]domain.DailySales, error)
}

// Completer produces a completion for a chat prompt.
type Completer interface {
	Complete(ctx context.Context, req advisor.CompletionRequest) (string, error)
}

type AnalysisService struct {
	repo    AnalyticsRepository
	advisor Completer
	now     func() time.Time
}

func NewAnalysisService(repo AnalyticsRepository, advisor Completer) *AnalysisService {
	return &AnalysisService{
		repo:    repo,
		advisor: advisor,
		now:     time.Now,
	}
}

// InventoryData returns the stock and sales chart series without asking
// the advisory service.
func (s *AnalysisService) InventoryData(ctx context.Context) (domain.InventoryData, error) {
	data, _, err := s.collect(ctx)
	return data, err
}

// AnalyzeInventory gathers the inventory series and asks the advisory
// service for a narrative. When only the narrative fails the series are
// still returned with NarrativeAvailable unset.
func (s *AnalysisService) AnalyzeInventory(ctx context.Context) (domain.InventoryAnalysis, error) {
	data, snapshots, err := s.collect(ctx)
	if err != nil {
		return domain.InventoryAnalysis{}, err
	}

	analysis := domain.InventoryAnalysis{
		InventoryData: data,
		Snapshots:     snapshots,
		GeneratedAt:   s.now().UTC(),
	}

	prompt, err := analysisPrompt(snapshots)
	if err != nil {
		zap.L().Warn("failed to build analysis prompt", zap.Error(err))
		return analysis, nil
	}

	narrative, err := s.advisor.Complete(ctx, advisor.CompletionRequest{
		Messages: []advisor.Message{
			{Role: advisor.RoleSystem, Content: analysisSystemPrompt},
			{Role: advisor.RoleUser, Content: prompt},
		},
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		zap.L().Warn("inventory analysis narrative failed", zap.Error(err))
		return analysis, nil
	}

	analysis.Narrative = narrative
	analysis.NarrativeAvailable = true

	return analysis, nil
}

func (s *AnalysisService) collect(ctx context.Context) (domain.InventoryData, []domain.ProductSnapshot, error) {
	products, err := s.repo.ProductSales(ctx)
	if err != nil {
		return domain.InventoryData{}, nil, fmt.Errorf("%w: s.repo.ProductSales -> %w", ErrAnalysisDataUnavailable, err)
	}

	daily, err := s.repo.DailySales(ctx)
	if err != nil {
		return domain.InventoryData{}, nil, fmt.Errorf("%w: s.repo.DailySales -> %w", ErrAnalysisDataUnavailable, err)
	}

	snapshots := make([]domain.ProductSnapshot, len(products))
	stock := domain.ChartSeries{
		Labels: make([]string, len(products)),
		Data:   make([]float64, len(products)),
	}
	for i, p := range products {
		snapshots[i] = domain.ProductSnapshot{
			ProductID:    p.ProductID,
			CurrentStock: p.CurrentStock.InexactFloat64(),
			TotalSales:   p.TotalSales.InexactFloat64(),
		}
		if p.LastSaleDate != nil {
			date := p.LastSaleDate.Format(domain.DateLayout)
			snapshots[i].LastSaleDate = &date
		}

		stock.Labels[i] = p.ProductID
		stock.Data[i] = snapshots[i].CurrentStock
	}

	sales := domain.ChartSeries{
		Labels: make([]string, len(daily)),
		Data:   make([]float64, len(daily)),
	}
	for i, d := range daily {
		sales.Labels[i] = d.Date.Format(domain.DateLayout)
		sales.Data[i] = d.Total.InexactFloat64()
	}

	return domain.InventoryData{StockSeries: stock, SalesSeries: sales}, snapshots, nil
}

func analysisPrompt(snapshots []domain.ProductSnapshot) (string, error) {
	body, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json.MarshalIndent -> %w", err)
	}

	return fmt.Sprintf(`Analyze the following inventory data and provide insights and recommendations:
%s

Consider the following aspects:
1. Current stock levels
2. Total sales
3. Last sale date
4. Potential overstocking or understocking
5. Sales trends
6. Recommendations for inventory management
7. Strategies to boost sales for slow-moving items
8. Overall business improvement suggestions

Provide a concise analysis and actionable recommendations in markdown format.`, body), nil
}
