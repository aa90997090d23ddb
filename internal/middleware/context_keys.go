package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
)

// actorCtxKey is the key used to store the authenticated actor in the request context.
const actorCtxKey = contextKey("actor")

// WithActor returns a copy of ctx carrying the authenticated actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// MustGetActor retrieves the actor or aborts with 401. Handlers behind
// AuthMiddleware use this instead of repeating the lookup and error path.
func MustGetActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := GetActorFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return actor, ok
}
