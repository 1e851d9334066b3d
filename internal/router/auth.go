package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/handler"
	"github.com/kjh/spacebook/internal/middleware"
)

// RegisterAuth mounts the authentication endpoints under /api/v1/auth.
// Signup, login and reissue are public; logout and withdraw act on
// the authenticated caller.
func RegisterAuth(e *echo.Echo, h *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/v1/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/reissue", h.Reissue)

	p := e.Group("/api/v1/auth", middleware.JWTAuth(jwtSecret))
	p.POST("/logout", h.Logout)
	p.DELETE("/withdraw", h.Withdraw)
}

// RegisterUsers mounts the profile endpoints under /api/v1/users.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group("/api/v1/users", middleware.JWTAuth(jwtSecret))
	g.GET("/me", h.Me)
	g.PATCH("/me", h.UpdateMe)
}
