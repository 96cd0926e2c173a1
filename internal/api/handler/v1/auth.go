package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/api/middleware"
	"github.com/vietanh2810/supply-chain-api/internal/config"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.User, domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login a user
// @Description  Opens a session. The token is returned and also set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, session, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), session)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.setSessionCookie(ctx, token, time.Until(session.ExpiresAt))

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     token,
		User:      user,
		ExpiresAt: session.ExpiresAt,
		Redirect:  user.Role.DashboardPath(),
	})
}

// HandleLogout godoc
// @Summary      Logout
// @Description  Revokes the current session and clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	session, ok := authorize(ctx)
	if !ok {
		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), session.ID); err != nil {
		err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.conf.CookieSecure, true)
}
