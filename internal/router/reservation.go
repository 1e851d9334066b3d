package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/handler"
	"github.com/kjh/spacebook/internal/middleware"
)

// RegisterReservations mounts the booking endpoints under
// /api/v1/reservations. Every route acts on the authenticated
// caller's own reservations.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret)}, extra...)
	g := e.Group("/api/v1/reservations", mw...)
	g.POST("", h.Create)
	g.GET("/my", h.ListMine)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/cancel", h.Cancel)
}

// RegisterRecommendations mounts the natural-language search under
// /api/v1/recommendations for authenticated users.
func RegisterRecommendations(e *echo.Echo, h *handler.RecommendHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret)}, extra...)
	g := e.Group("/api/v1/recommendations", mw...)
	g.POST("", h.Recommend)
}

// RegisterHealth mounts the liveness probe at the root.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
