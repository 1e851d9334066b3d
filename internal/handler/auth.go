package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kjh/spacebook/internal/service"
)

// AuthHandler serves signup, login, token reissue, logout and
// account withdrawal.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type signupReq struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type withdrawReq struct {
	Password string `json:"password"`
}

// Signup registers an account and returns a token pair.
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || !strings.Contains(req.Email, "@") || len(req.Password) < 8 {
		return respondFail(c, http.StatusBadRequest, "username, valid email and a password of 8+ characters are required")
	}
	pair, err := h.Auth.Signup(c.Request().Context(), req.Username, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusCreated, pair)
}

// Login verifies credentials and returns a fresh token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return respondFail(c, http.StatusBadRequest, "email and password are required")
	}
	pair, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, pair)
}

// Reissue rotates a refresh token into a new token pair.
// POST /api/v1/auth/reissue
func (h *AuthHandler) Reissue(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return respondFail(c, http.StatusBadRequest, "refresh_token is required")
	}
	pair, err := h.Auth.Reissue(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, pair)
}

// Logout discards the caller's refresh token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	if err := h.Auth.Logout(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "logged out")
}

// Withdraw soft-deletes the caller's account after re-checking the
// password. Blocked while any CONFIRMED reservation exists.
// DELETE /api/v1/auth/withdraw
func (h *AuthHandler) Withdraw(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req withdrawReq
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return respondFail(c, http.StatusBadRequest, "password is required")
	}
	if err := h.Auth.DeleteAccount(c.Request().Context(), userID, req.Password); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, http.StatusOK, "account deleted")
}
