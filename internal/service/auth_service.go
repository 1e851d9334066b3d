package service

import (
	"context"
	"time"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/utils"
)

// TokenPair is what every successful signup, login and reissue hands
// back to the client.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AuthService implements signup, login, token reissue, logout and
// account withdrawal. Issuing a token pair always replaces the user's
// stored refresh token, so at most one refresh token per user is ever
// live.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	ledger ReservationLedger

	jwtSecret      string
	accessTTLMin   int
	refreshTTLDays int
	bcryptCost     int
}

func NewAuthService(users UserStore, tokens TokenStore, ledger ReservationLedger, jwtSecret string, accessTTLMin, refreshTTLDays, bcryptCost int) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		ledger:         ledger,
		jwtSecret:      jwtSecret,
		accessTTLMin:   accessTTLMin,
		refreshTTLDays: refreshTTLDays,
		bcryptCost:     bcryptCost,
	}
}

// Signup registers a new account and logs it in.
func (s *AuthService) Signup(ctx context.Context, username, email, password, phone string) (TokenPair, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return TokenPair{}, err
	}
	id, err := s.users.Create(ctx, username, email, hash, phone)
	if err != nil {
		return TokenPair{}, err
	}
	return s.issuePair(ctx, id, model.RoleUser)
}

// Login verifies credentials and issues a fresh token pair. A wrong
// email and a wrong password are indistinguishable to the caller; a
// withdrawn account is reported as such, since the credentials were
// otherwise valid.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == repository.ErrUserNotFound {
		return TokenPair{}, repository.ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return TokenPair{}, repository.ErrInvalidCredentials
	}
	if user.IsDeleted() {
		return TokenPair{}, repository.ErrAccountDeleted
	}
	return s.issuePair(ctx, user.ID, user.Role)
}

// Reissue rotates a refresh token: the presented token must match the
// stored hash and be unexpired, and its user must still be active.
// The old token is dead after this call whether or not it succeeds in
// full, because issuePair replaces the stored row.
func (s *AuthService) Reissue(ctx context.Context, refreshRaw string) (TokenPair, error) {
	rt, err := s.tokens.Lookup(ctx, utils.HashRefreshRaw(refreshRaw))
	if err != nil {
		return TokenPair{}, err
	}
	user, err := s.users.GetByID(ctx, rt.UserID)
	if err != nil {
		return TokenPair{}, err
	}
	if user.IsDeleted() {
		return TokenPair{}, repository.ErrAccountDeleted
	}
	return s.issuePair(ctx, user.ID, user.Role)
}

// Logout discards the user's refresh token. The access token stays
// technically valid until it expires; that window is bounded by the
// short access TTL.
func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	return s.tokens.DeleteForUser(ctx, userID)
}

// DeleteAccount withdraws the account. The password is re-checked
// first, then the reservation guard: an account holding any CONFIRMED
// reservation cannot leave until it cancels. On success the refresh
// token is discarded and the row soft-deleted, which keeps historical
// reservations pointing at a real user.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint64, password string) error {
	user, err := s.users.GetActiveByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return repository.ErrInvalidPassword
	}
	active, err := s.ledger.HasConfirmedReservation(ctx, userID)
	if err != nil {
		return err
	}
	if active {
		return repository.ErrHasActiveReservation
	}
	if err := s.tokens.DeleteForUser(ctx, userID); err != nil {
		return err
	}
	return s.users.SoftDelete(ctx, userID, time.Now().UTC())
}

func (s *AuthService) issuePair(ctx context.Context, userID uint64, role string) (TokenPair, error) {
	access, err := utils.NewAccessToken(s.jwtSecret, userID, role, s.accessTTLMin)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := utils.NewRefreshToken(s.refreshTTLDays)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.tokens.ReplaceForUser(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp,
		RefreshToken:     refresh.Raw,
		RefreshExpiresAt: refresh.Exp,
	}, nil
}
