package service

import (
	"context"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/utils"
)

// UserService serves the profile endpoints.
type UserService struct {
	users      UserStore
	bcryptCost int
}

func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Me returns the caller's own profile.
func (s *UserService) Me(ctx context.Context, userID uint64) (model.User, error) {
	return s.users.GetActiveByID(ctx, userID)
}

// UpdateProfile applies a partial update. A nil field means "leave
// alone". Changing the password requires both the current and the new
// password; supplying only one of the two is rejected, as is a new
// password equal to the current one.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, phone, currentPassword, newPassword *string) (model.User, error) {
	user, err := s.users.GetActiveByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if (currentPassword == nil) != (newPassword == nil) {
		return model.User{}, repository.ErrPasswordChangeIncomplete
	}
	if currentPassword != nil {
		if !utils.VerifyPassword(user.PasswordHash, *currentPassword) {
			return model.User{}, repository.ErrInvalidPassword
		}
		if *currentPassword == *newPassword {
			return model.User{}, repository.ErrSamePassword
		}
		hash, err := utils.HashPassword(*newPassword, s.bcryptCost)
		if err != nil {
			return model.User{}, err
		}
		if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
			return model.User{}, err
		}
	}

	if phone != nil {
		if err := s.users.UpdatePhone(ctx, userID, *phone); err != nil {
			return model.User{}, err
		}
		user.PhoneNumber = *phone
	}
	return user, nil
}
