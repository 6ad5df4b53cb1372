package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fidomax07/vetting-api/internal/auth"
	"github.com/fidomax07/vetting-api/internal/models"
	"github.com/fidomax07/vetting-api/internal/repository"
	"github.com/fidomax07/vetting-api/internal/validation"
	"gorm.io/gorm"
)

// UserService handles registration, sessions, password changes and likes.
type UserService struct {
	users     repository.UserRepository
	likes     repository.LikeRepository
	hasher    auth.PasswordHasher
	signer    auth.TokenSigner
	validator *validation.Validator

	// compared against on unknown usernames
	dummyHash string
}

// NewUserService creates a new UserService.
func NewUserService(
	users repository.UserRepository,
	likes repository.LikeRepository,
	hasher auth.PasswordHasher,
	signer auth.TokenSigner,
	validator *validation.Validator,
) (*UserService, error) {
	dummyHash, err := hasher.Hash("vetting-dummy-password")
	if err != nil {
		return nil, err
	}

	return &UserService{
		users:     users,
		likes:     likes,
		hasher:    hasher,
		signer:    signer,
		validator: validator,
		dummyHash: dummyHash,
	}, nil
}

// Account wraps a user record with its entity operations.
func (s *UserService) Account(user *models.User) *Account {
	return &Account{
		User:      user,
		users:     s.users,
		likes:     s.likes,
		hasher:    s.hasher,
		signer:    s.signer,
		validator: s.validator,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string `json:"name" validate:"max=255"`
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=7,maxbytes=72"`
}

// Register creates a user and opens its first session.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*Account, string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = models.NormalizeUsername(input.Username)
	if err := s.validator.Struct(&input); err != nil {
		return nil, "", err
	}

	user := &models.User{Username: input.Username}
	if input.Name != "" {
		name := input.Name
		user.Name = &name
	}
	user.SetPassword(input.Password)

	account := s.Account(user)
	if err := account.Create(ctx); err != nil {
		return nil, "", err
	}

	token, err := account.GenerateAuthToken(ctx)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and appends a new session token.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*Account, string, error) {
	if err := s.validator.Struct(&input); err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByUsername(ctx, models.NormalizeUsername(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.hasher.Compare(s.dummyHash, input.Password)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Compare(user.Password, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	account := s.Account(user)
	token, err := account.GenerateAuthToken(ctx)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Logout ends the session of token, or every session when allDevices is set.
func (s *UserService) Logout(ctx context.Context, account *Account, token string, allDevices bool) error {
	if allDevices {
		return account.InvalidateTokens(ctx)
	}
	return account.InvalidateToken(ctx, token)
}

// LoadDependencies populates the likes and liked views for profile display.
func (s *UserService) LoadDependencies(ctx context.Context, account *Account) error {
	if err := account.LoadLikes(ctx); err != nil {
		return err
	}
	return account.LoadLiked(ctx)
}

// HandlePasswordUpdate validates the change and stores the new password.
func (s *UserService) HandlePasswordUpdate(ctx context.Context, account *Account, input PasswordUpdateInput) error {
	password, err := account.ValidateUpdatePassword(input)
	if err != nil {
		return err
	}
	return account.UpdatePassword(ctx, password)
}

// FindWithLikesCount loads a user by raw id together with its received-like count.
func (s *UserService) FindWithLikesCount(ctx context.Context, rawID string) (*Account, error) {
	id, err := ParseUserID(rawID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	account := s.Account(user)
	if err := account.LoadLikesCount(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// Like makes account like the user identified by rawID.
func (s *UserService) Like(ctx context.Context, account *Account, rawID string) error {
	id, err := ParseUserID(rawID)
	if err != nil {
		return err
	}
	return account.LikeUser(ctx, id)
}

// Unlike removes account's like of the user identified by rawID.
func (s *UserService) Unlike(ctx context.Context, account *Account, rawID string) error {
	id, err := ParseUserID(rawID)
	if err != nil {
		return err
	}
	return account.UnlikeUser(ctx, id)
}

// GetOrderedByLikes returns every user with LikesCount loaded, most liked first.
func (s *UserService) GetOrderedByLikes(ctx context.Context) ([]*Account, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	counts, err := s.likes.CountReceivedByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	accounts := make([]*Account, 0, len(users))
	for i := range users {
		account := s.Account(&users[i])
		count := counts[users[i].ID]
		account.LikesCount = &count
		accounts = append(accounts, account)
	}

	SortByLikesCount(accounts)
	return accounts, nil
}
