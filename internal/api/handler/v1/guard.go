package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/auth"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
)

// authorize runs the session guard for the request and renders the denial.
// Handlers return immediately when ok is false.
func authorize(ctx *gin.Context, roles ...domain.Role) (auth.Session, bool) {
	session := auth.FromContext(ctx.Request.Context())

	decision := auth.Authorize(session, roles...)
	if decision.Allowed {
		return session, true
	}

	switch decision.Reason {
	case auth.DenyForbidden:
		err := fmt.Errorf("user %d with role %q requires one of %v", decision.UserID, decision.Role, roles)
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrUnauthenticated(fmt.Errorf("%s", decision.Reason)))
	}

	return auth.Session{}, false
}
