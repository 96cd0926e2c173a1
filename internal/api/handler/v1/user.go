package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

type UserService interface {
	Profile(ctx context.Context, id uint) (domain.Profile, error)
	ActiveSessions(ctx context.Context) ([]domain.UserSessionStatus, error)
}

type StockLister interface {
	ListStocks(ctx context.Context) ([]domain.StockRecord, error)
}

type UserHandler struct {
	svc    UserService
	stocks StockLister
}

func NewUserHandler(svc UserService, stocks StockLister) *UserHandler {
	return &UserHandler{
		svc:    svc,
		stocks: stocks,
	}
}

// HandleProfile godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Success      200      {object}   domain.Profile
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /profile [get]
// @Security     BearerAuth
func (h *UserHandler) HandleProfile(ctx *gin.Context) {
	session, ok := authorize(ctx)
	if !ok {
		return
	}

	profile, respErr := h.profile(ctx, session.UserID)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// HandleAdminSessions godoc
// @Summary      Manager and customer session status
// @Tags         admin
// @Produce      json
// @Success      200      {array}    domain.UserSessionStatus
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/sessions [get]
// @Security     BearerAuth
func (h *UserHandler) HandleAdminSessions(ctx *gin.Context) {
	if _, ok := authorize(ctx, domain.RoleAdmin); !ok {
		return
	}

	sessions, err := h.svc.ActiveSessions(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, storeFailure(fmt.Errorf("v1.HandleAdminSessions -> h.svc.ActiveSessions -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleDashboard godoc
// @Summary      Role dashboard
// @Description  Admins also get the session listing, managers the current stock levels.
// @Tags         users
// @Produce      json
// @Param        role     path       string true "admin, manager or customer"
// @Success      200      {object}   response.DashboardResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /dashboard/{role} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleDashboard(role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, ok := authorize(ctx, role)
		if !ok {
			return
		}

		profile, respErr := h.profile(ctx, session.UserID)
		if respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		dashboard := response.DashboardResponse{Profile: profile}

		var err error
		switch role {
		case domain.RoleAdmin:
			dashboard.Sessions, err = h.svc.ActiveSessions(ctx.Request.Context())
		case domain.RoleManager:
			dashboard.Stocks, err = h.stocks.ListStocks(ctx.Request.Context())
		}
		if err != nil {
			response.RenderErr(ctx, storeFailure(fmt.Errorf("v1.HandleDashboard(%s) -> %w", role, err)))
			return
		}

		ctx.JSON(http.StatusOK, dashboard)
	}
}

func (h *UserHandler) profile(ctx *gin.Context, userID uint) (domain.Profile, *response.Err) {
	profile, err := h.svc.Profile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.Profile{}, response.ErrNotFound("user", "id", userID)
		}

		return domain.Profile{}, storeFailure(fmt.Errorf("h.svc.Profile -> %w", err))
	}

	return profile, nil
}

// storeFailure renders 503 when the store is unreachable, 500 otherwise.
func storeFailure(err error) *response.Err {
	if errors.Is(err, service.ErrStoreUnavailable) {
		return response.ErrServiceUnavailable(err, "data store unavailable")
	}

	return response.ErrInternalServerError(err)
}
