package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/advisor"
)

var (
	ErrAdvisoryUnavailable = errors.New("advisory service unavailable")
	ErrInvalidRoute        = errors.New("start and destination are required")
	ErrInvalidMessage      = errors.New("message must be between 1 and 2000 characters")
)

const (
	MaxChatMessageLength = 2000

	routeSystemPrompt = "You are an AI assistant specialized in transportation management. " +
		"Provide optimized routes with justifications. Provide concise responses in markdown format."
	routeMaxTokens = 500

	chatSystemPrompt = "You are a concise assistant focused on supply chain, sales, inventory. " +
		"Answer questions clearly in **2-4 lines max**, using markdown formatting. " +
		"Avoid long explanations. Go straight to the point with short tips or steps."
	chatMaxTokens = 300

	advisoryTemperature = 0.7
)

type AdvisoryService struct {
	advisor Completer
}

func NewAdvisoryService(advisor Completer) *AdvisoryService {
	return &AdvisoryService{
		advisor: advisor,
	}
}

func (s *AdvisoryService) SuggestRoute(ctx context.Context, req domain.RouteRequest) (string, error) {
	start := strings.TrimSpace(req.Start)
	destination := strings.TrimSpace(req.Destination)
	if start == "" || destination == "" {
		return "", ErrInvalidRoute
	}

	waypoints := make([]string, 0, len(req.Waypoints))
	for _, w := range req.Waypoints {
		if w = strings.TrimSpace(w); w != "" {
			waypoints = append(waypoints, w)
		}
	}

	prompt := fmt.Sprintf(`Given the starting point '%s' and destination '%s',
suggest an optimized transportation route passing through important locations: [%s].
Explain the choice of this route in terms of efficiency, safety, and cost-effectiveness.
Provide a concise analysis and actionable recommendations in markdown format.`,
		start, destination, strings.Join(waypoints, ", "))

	return s.complete(ctx, "route", routeSystemPrompt, prompt, routeMaxTokens)
}

func (s *AdvisoryService) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if n := len([]rune(message)); n == 0 || n > MaxChatMessageLength {
		return "", ErrInvalidMessage
	}

	return s.complete(ctx, "chat", chatSystemPrompt, message, chatMaxTokens)
}

func (s *AdvisoryService) complete(ctx context.Context, purpose, system, prompt string, maxTokens int) (string, error) {
	text, err := s.advisor.Complete(ctx, advisor.CompletionRequest{
		Messages: []advisor.Message{
			{Role: advisor.RoleSystem, Content: system},
			{Role: advisor.RoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: advisoryTemperature,
	})
	if err != nil {
		zap.L().Warn("advisory request failed", zap.String("purpose", purpose), zap.Error(err))
		return "", fmt.Errorf("%w: s.advisor.Complete -> %w", ErrAdvisoryUnavailable, err)
	}

	return text, nil
}
