package http

import "github.com/gin-gonic/gin"

// RouterContext carries the route groups a module can mount handlers on.
type RouterContext struct {
	// Public routes require no visitor token (e.g. session capture, deep links).
	Public *gin.RouterGroup
	// Visitor routes require a valid visitor token; the visitor session ID is
	// available via httpkit.GetVisitorID.
	Visitor *gin.RouterGroup
}

// Module is a self-contained bounded context that mounts its own routes.
type Module interface {
	// Name returns the module identifier (used for logging).
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router context.
	RegisterRoutes(ctx *RouterContext)
}
