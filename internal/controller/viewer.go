package controller

import (
	"context"
	"dsa_tracker_backend/internal/service"
	"dsa_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ViewerResolver maps the request's claims to the identity it acts as.
type ViewerResolver interface {
	Resolve(ctx context.Context, claims *util.Claims) (service.Viewer, error)
}

func resolveViewer(ctx *gin.Context, identity ViewerResolver) (service.Viewer, bool) {
	viewer, err := identity.Resolve(ctx.Request.Context(), util.GetUserFromContext(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return service.Anonymous, false
	}
	return viewer, true
}
