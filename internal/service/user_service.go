package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/d60-Lab/buzzboard/internal/auth"
	"github.com/d60-Lab/buzzboard/internal/mailer"
	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/internal/repository"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
	"github.com/d60-Lab/buzzboard/pkg/logger"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UserService interface {
	// Register creates an unverified account and sends the verification mail.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	// Login authenticates and returns a bearer token for verified accounts.
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateUsername(ctx context.Context, userID, username string) error
	Delete(ctx context.Context, userID string) error
	Subscribe(ctx context.Context, userID, categoryID string) error
	Unsubscribe(ctx context.Context, userID, categoryID string) error
	Get(ctx context.Context, userID string) (*model.User, error)
}

type userService struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	tokens     *auth.TokenManager
	mail       mailer.Mailer
}

func NewUserService(users repository.UserRepository, categories repository.CategoryRepository, tokens *auth.TokenManager, mail mailer.Mailer) UserService {
	return &userService{users: users, categories: categories, tokens: tokens, mail: mail}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if len(in.Password) < auth.MinPasswordLength {
		return nil, apperr.InvalidInput(fmt.Sprintf(
			"invalid password length, password must be at least %d characters", auth.MinPasswordLength))
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("user", "email already taken")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Status:   model.UserStatusUnverified,
		Role:     model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueEmailVerification(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.mail.SendVerification(ctx, user.Email, token); err != nil {
		// account exists; the resend endpoint recovers from a lost mail
		logger.Error("send verification mail", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token, auth.TokenEmailVerification)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, claims.UserID, map[string]interface{}{
		"status": model.UserStatusVerified,
	})
}

func (s *userService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Status != model.UserStatusUnverified {
		return apperr.Conflict("user", "account already verified")
	}
	token, err := s.tokens.IssueEmailVerification(user.ID, user.Email)
	if err != nil {
		return err
	}
	return s.mail.SendVerification(ctx, user.Email, token)
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return "", nil, apperr.Unauthorized("incorrect email or password")
	}
	if !user.IsVerified() {
		return "", nil, apperr.Forbidden("user account not verified")
	}
	token, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := s.tokens.IssuePasswordReset(user.ID, user.Email)
	if err != nil {
		return err
	}
	return s.mail.SendPasswordReset(ctx, user.Email, token)
}

func (s *userService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.Parse(token, auth.TokenPasswordReset)
	if err != nil {
		return err
	}
	if len(newPassword) < auth.MinPasswordLength {
		return apperr.InvalidInput(fmt.Sprintf(
			"invalid password length, password must be at least %d characters", auth.MinPasswordLength))
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, claims.UserID, map[string]interface{}{"password": hash})
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperr.Unauthorized("incorrect email or password")
	}
	if len(newPassword) < auth.MinPasswordLength {
		return apperr.InvalidInput(fmt.Sprintf(
			"invalid password length, password must be at least %d characters", auth.MinPasswordLength))
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, map[string]interface{}{"password": hash})
}

func (s *userService) UpdateUsername(ctx context.Context, userID, username string) error {
	return s.users.Update(ctx, userID, map[string]interface{}{"username": username})
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}

func (s *userService) Subscribe(ctx context.Context, userID, categoryID string) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range user.Subscribed {
		if id == categoryID {
			return nil
		}
	}
	subscribed := append([]string(user.Subscribed), categoryID)
	return s.users.Update(ctx, userID, map[string]interface{}{
		"subscribed": datatypes.NewJSONSlice(subscribed),
	})
}

func (s *userService) Unsubscribe(ctx context.Context, userID, categoryID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	subscribed := make([]string, 0, len(user.Subscribed))
	for _, id := range user.Subscribed {
		if id != categoryID {
			subscribed = append(subscribed, id)
		}
	}
	if len(subscribed) == len(user.Subscribed) {
		return nil
	}
	return s.users.Update(ctx, userID, map[string]interface{}{
		"subscribed": datatypes.NewJSONSlice(subscribed),
	})
}

func (s *userService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
