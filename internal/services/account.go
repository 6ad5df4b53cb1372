package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fidomax07/vetting-api/internal/auth"
	"github.com/fidomax07/vetting-api/internal/models"
	"github.com/fidomax07/vetting-api/internal/repository"
	"github.com/fidomax07/vetting-api/internal/validation"
	"gorm.io/gorm"
)

// Account binds the user entity operations to a loaded user record.
// Likes, Liked and the counts are only populated by the matching Load call.
type Account struct {
	User *models.User

	Likes      []models.UserLike
	Liked      []models.UserLike
	LikesCount *int64
	LikedCount *int64

	users     repository.UserRepository
	likes     repository.LikeRepository
	hasher    auth.PasswordHasher
	signer    auth.TokenSigner
	validator *validation.Validator
}

// PasswordUpdateInput is the body of a password change.
type PasswordUpdateInput struct {
	PasswordOld          string `json:"password_old" validate:"required"`
	Password             string `json:"password" validate:"required,min=7,maxbytes=72,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ID returns the user identifier.
func (a *Account) ID() uint64 {
	return a.User.ID
}

// HashPassword replaces a freshly set password with its hash. It is a no-op
// when the password has not changed.
func (a *Account) HashPassword() error {
	if !a.User.PasswordDirty() {
		return nil
	}
	hash, err := a.hasher.Hash(a.User.Password)
	if err != nil {
		return err
	}
	a.User.SetPasswordHash(hash)
	return nil
}

// Create hashes the password and inserts the user.
func (a *Account) Create(ctx context.Context) error {
	if err := a.HashPassword(); err != nil {
		return err
	}
	if err := a.users.Create(ctx, a.User); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Save hashes a changed password and persists the user.
func (a *Account) Save(ctx context.Context) error {
	if err := a.HashPassword(); err != nil {
		return err
	}
	if err := a.users.Save(ctx, a.User); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GenerateAuthToken signs a new session token and appends it to the user's tokens.
func (a *Account) GenerateAuthToken(ctx context.Context) (string, error) {
	token, err := a.signer.Sign(a.User.ID)
	if err != nil {
		return "", err
	}
	if err := a.users.AppendToken(ctx, a.User, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// InvalidateToken removes one session token. An unknown token is ignored.
func (a *Account) InvalidateToken(ctx context.Context, token string) error {
	if err := a.users.RemoveToken(ctx, a.User.ID, token); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}
	return nil
}

// InvalidateTokens removes every session token.
func (a *Account) InvalidateTokens(ctx context.Context) error {
	if err := a.users.ClearTokens(ctx, a.User.ID); err != nil {
		return fmt.Errorf("failed to invalidate tokens: %w", err)
	}
	return nil
}

// Tokens returns the active session tokens in issue order.
func (a *Account) Tokens(ctx context.Context) ([]string, error) {
	tokens, err := a.users.Tokens(ctx, a.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}
	return tokens, nil
}

// UpdatePassword sets a new raw password and saves it hashed.
func (a *Account) UpdatePassword(ctx context.Context, password string) error {
	a.User.SetPassword(password)
	return a.Save(ctx)
}

// ValidateUpdatePassword checks the input rules, then the old password.
// It returns the new raw password.
func (a *Account) ValidateUpdatePassword(input PasswordUpdateInput) (string, error) {
	if err := a.validator.Struct(&input); err != nil {
		return "", err
	}

	if err := a.hasher.Compare(a.User.Password, input.PasswordOld); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrOldPasswordMismatch
		}
		return "", err
	}

	return input.Password, nil
}

// ValidateOwnVetting rejects operations targeting the user itself.
func (a *Account) ValidateOwnVetting(targetID uint64) error {
	if targetID == a.User.ID {
		return ErrSelfVetting
	}
	return nil
}

// HasLiked reports whether the user liked target.
func (a *Account) HasLiked(ctx context.Context, targetID uint64) (bool, error) {
	liked, err := a.likes.Exists(ctx, a.User.ID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return liked, nil
}

func (a *Account) ValidateLike(ctx context.Context, targetID uint64) error {
	liked, err := a.HasLiked(ctx, targetID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}
	return nil
}

func (a *Account) ValidateUnlike(ctx context.Context, targetID uint64) error {
	liked, err := a.HasLiked(ctx, targetID)
	if err != nil {
		return err
	}
	if !liked {
		return ErrNotLiked
	}
	return nil
}

// LikeUser records a like from this user to target and reloads Liked.
func (a *Account) LikeUser(ctx context.Context, targetID uint64) error {
	if err := a.ValidateOwnVetting(targetID); err != nil {
		return err
	}
	if err := a.ensureExists(ctx, targetID); err != nil {
		return err
	}
	if err := a.ValidateLike(ctx, targetID); err != nil {
		return err
	}

	like := &models.UserLike{UserID: a.User.ID, UserLikedID: targetID}
	if err := a.likes.Create(ctx, like); err != nil {
		// a concurrent like won the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	return a.LoadLiked(ctx)
}

// UnlikeUser removes this user's like of target and reloads Liked.
func (a *Account) UnlikeUser(ctx context.Context, targetID uint64) error {
	if err := a.ValidateOwnVetting(targetID); err != nil {
		return err
	}
	if err := a.ensureExists(ctx, targetID); err != nil {
		return err
	}
	if err := a.ValidateUnlike(ctx, targetID); err != nil {
		return err
	}

	deleted, err := a.likes.Delete(ctx, a.User.ID, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if !deleted {
		return ErrNotLiked
	}

	return a.LoadLiked(ctx)
}

func (a *Account) ensureExists(ctx context.Context, userID uint64) error {
	if _, err := a.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

// LoadLikes loads the likes received by the user.
func (a *Account) LoadLikes(ctx context.Context) error {
	likes, err := a.likes.ListReceived(ctx, a.User.ID)
	if err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	a.Likes = likes
	return nil
}

// LoadLiked loads the likes given by the user.
func (a *Account) LoadLiked(ctx context.Context) error {
	liked, err := a.likes.ListGiven(ctx, a.User.ID)
	if err != nil {
		return fmt.Errorf("failed to load liked: %w", err)
	}
	a.Liked = liked
	return nil
}

func (a *Account) LoadLikesCount(ctx context.Context) error {
	count, err := a.likes.CountReceived(ctx, a.User.ID)
	if err != nil {
		return fmt.Errorf("failed to count likes: %w", err)
	}
	a.LikesCount = &count
	return nil
}

func (a *Account) LoadLikedCount(ctx context.Context) error {
	count, err := a.likes.CountGiven(ctx, a.User.ID)
	if err != nil {
		return fmt.Errorf("failed to count liked: %w", err)
	}
	a.LikedCount = &count
	return nil
}
