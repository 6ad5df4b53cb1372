package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fidomax07/vetting-api/internal/database"
	"github.com/fidomax07/vetting-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// Save persists changes to an existing user
func (r *GormUserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDAndToken finds a user by ID that still holds the token
func (r *GormUserRepository) FindByIDAndToken(ctx context.Context, id uint64, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Scopes(database.HoldingToken(token)).
		Where("users.id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user in creation order
func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Scopes(database.OrderByID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AppendToken adds a token and touches the user's updated_at, mirroring the
// new timestamp onto user.
func (r *GormUserRepository) AppendToken(ctx context.Context, user *models.User, token string) error {
	var touchedAt time.Time
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.UserToken{UserID: user.ID, Token: token}).Error; err != nil {
			return fmt.Errorf("append token: %w", err)
		}
		touchedAt = tx.NowFunc()
		return touchAt(tx, user.ID, touchedAt)
	})
	if err != nil {
		return err
	}
	user.UpdatedAt = touchedAt
	return nil
}

// RemoveToken removes exactly the matching token
func (r *GormUserRepository) RemoveToken(ctx context.Context, userID uint64, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND token = ?", userID, token).Delete(&models.UserToken{})
		if res.Error != nil {
			return fmt.Errorf("remove token: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return touch(tx, userID)
	})
}

// ClearTokens removes every token of the user
func (r *GormUserRepository) ClearTokens(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserToken{}).Error; err != nil {
			return fmt.Errorf("clear tokens: %w", err)
		}
		return touch(tx, userID)
	})
}

// Tokens returns the user's active tokens in insertion order
func (r *GormUserRepository) Tokens(ctx context.Context, userID uint64) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&models.UserToken{}).
		Where("user_id = ?", userID).
		Scopes(database.OrderByID).
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func touch(tx *gorm.DB, userID uint64) error {
	return touchAt(tx, userID, tx.NowFunc())
}

func touchAt(tx *gorm.DB, userID uint64, at time.Time) error {
	err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("updated_at", at).Error
	if err != nil {
		return fmt.Errorf("touch user: %w", err)
	}
	return nil
}
