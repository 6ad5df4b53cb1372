package repository

import (
	"context"

	"github.com/fidomax07/vetting-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// Save persists changes to an existing user
	Save(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by its normalized username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByIDAndToken finds a user by ID that still holds the given session token
	FindByIDAndToken(ctx context.Context, id uint64, token string) (*models.User, error)

	// List returns every user in creation order
	List(ctx context.Context) ([]models.User, error)

	// AppendToken adds a session token to the end of the user's token sequence
	// and refreshes user.UpdatedAt
	AppendToken(ctx context.Context, user *models.User, token string) error

	// RemoveToken removes exactly the matching token. Removing an absent token is not an error.
	RemoveToken(ctx context.Context, userID uint64, token string) error

	// ClearTokens removes every session token of the user
	ClearTokens(ctx context.Context, userID uint64) error

	// Tokens returns the user's active tokens in insertion order
	Tokens(ctx context.Context, userID uint64) ([]string, error)
}

// LikeRepository defines the interface for like relation data access
type LikeRepository interface {
	// Create stores a like edge. A duplicate pair fails with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, like *models.UserLike) error

	// Delete removes the edge liker -> likee and reports whether one existed
	Delete(ctx context.Context, likerID, likeeID uint64) (bool, error)

	// Exists reports whether liker has liked likee
	Exists(ctx context.Context, likerID, likeeID uint64) (bool, error)

	// ListReceived lists likes targeting the user, with the liker preloaded
	ListReceived(ctx context.Context, userID uint64) ([]models.UserLike, error)

	// ListGiven lists likes made by the user, with the likee preloaded
	ListGiven(ctx context.Context, userID uint64) ([]models.UserLike, error)

	// CountReceived counts likes targeting the user
	CountReceived(ctx context.Context, userID uint64) (int64, error)

	// CountGiven counts likes made by the user
	CountGiven(ctx context.Context, userID uint64) (int64, error)

	// CountReceivedByUser returns received-like counts keyed by likee ID.
	// Users without likes are absent from the map.
	CountReceivedByUser(ctx context.Context) (map[uint64]int64, error)
}
