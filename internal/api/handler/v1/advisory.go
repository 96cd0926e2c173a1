package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

const (
	routeUnavailable     = "failed to get transport route"
	assistantUnavailable = "assistant is unavailable"
)

type AdvisoryService interface {
	SuggestRoute(ctx context.Context, req domain.RouteRequest) (string, error)
	Chat(ctx context.Context, message string) (string, error)
}

type AdvisoryHandler struct {
	svc AdvisoryService
}

func NewAdvisoryHandler(svc AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{
		svc: svc,
	}
}

// HandleTransportRoute godoc
// @Summary      Suggest a transport route
// @Tags         advisory
// @Accept       json
// @Produce      json
// @Param        request   body      request.RouteRequest true "request body"
// @Success      200      {object}   response.RouteResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /transport/route [post]
// @Security     BearerAuth
func (h *AdvisoryHandler) HandleTransportRoute(ctx *gin.Context) {
	if _, ok := authorize(ctx, domain.RoleManager); !ok {
		return
	}

	var req request.RouteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	route, err := h.svc.SuggestRoute(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleTransportRoute -> h.svc.SuggestRoute -> %w", err)
		response.RenderErr(ctx, advisoryErr(err, routeUnavailable))
		return
	}

	ctx.JSON(http.StatusOK, response.RouteResponse{RouteInfo: route})
}

// HandleChat godoc
// @Summary      Ask the supply chain assistant
// @Tags         advisory
// @Accept       json
// @Produce      json
// @Param        request   body      request.ChatRequest true "request body"
// @Success      200      {object}   response.ChatResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /chatbot [post]
// @Security     BearerAuth
func (h *AdvisoryHandler) HandleChat(ctx *gin.Context) {
	if _, ok := authorize(ctx); !ok {
		return
	}

	var req request.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	answer, err := h.svc.Chat(ctx.Request.Context(), req.Message)
	if err != nil {
		err = fmt.Errorf("v1.HandleChat -> h.svc.Chat -> %w", err)
		response.RenderErr(ctx, advisoryErr(err, assistantUnavailable))
		return
	}

	ctx.JSON(http.StatusOK, response.ChatResponse{Response: answer})
}

func advisoryErr(err error, text string) *response.Err {
	switch {
	case errors.Is(err, service.ErrInvalidRoute):
		return response.ErrBadRequest(service.ErrInvalidRoute)
	case errors.Is(err, service.ErrInvalidMessage):
		return response.ErrBadRequest(service.ErrInvalidMessage)
	case errors.Is(err, service.ErrAdvisoryUnavailable):
		return response.ErrBadGateway(err, text)
	default:
		return response.ErrInternalServerError(err)
	}
}
