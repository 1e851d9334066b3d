package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/handler"
	"github.com/kjh/spacebook/internal/middleware"
	"github.com/kjh/spacebook/internal/model"
)

// RegisterSpaces mounts the catalog. Browsing is public; listing
// management requires the ADMIN role. The availability views live
// under the space they describe but are served by the reservation
// handler, which owns that data.
func RegisterSpaces(e *echo.Echo, h *handler.SpaceHandler, r *handler.ReservationHandler, jwtSecret string, browse ...echo.MiddlewareFunc) {
	pub := e.Group("/api/v1/spaces", browse...)
	pub.GET("", h.List)
	pub.GET("/:id", h.Detail)
	pub.GET("/:id/reserved-times", r.ReservedTimes)
	pub.GET("/:id/availability", r.CheckAvailability)

	admin := e.Group(
		"/api/v1/spaces",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	admin.POST("", h.Create)
	admin.GET("/me", h.Mine)
	admin.PATCH("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}
