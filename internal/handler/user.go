package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/service"
)

// UserHandler serves the profile endpoints.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// userView is the public shape of an account; the credential hash
// never leaves the server.
type userView struct {
	ID          uint64    `json:"id"`
	Role        string    `json:"role"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

func toUserView(u model.User) userView {
	return userView{
		ID:          u.ID,
		Role:        u.Role,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}

type updateProfileReq struct {
	PhoneNumber     *string `json:"phone_number"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

// Me returns the caller's profile.
// GET /api/v1/users/me
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.Users.Me(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, toUserView(u))
}

// UpdateMe partially updates the caller's profile. Absent fields are
// left untouched.
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	if req.NewPassword != nil && len(*req.NewPassword) < 8 {
		return respondFail(c, http.StatusBadRequest, "new password must be 8+ characters")
	}
	u, err := h.Users.UpdateProfile(c.Request().Context(), userID, req.PhoneNumber, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, toUserView(u))
}
