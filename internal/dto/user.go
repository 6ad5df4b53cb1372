package dto

import (
	"time"

	"github.com/fidomax07/vetting-api/internal/constants"
	"github.com/fidomax07/vetting-api/internal/models"
	"github.com/fidomax07/vetting-api/internal/services"
)

// UserDTO is the public view of a user. Password and session tokens are never part of it.
// The like fields are present only when loaded.
type UserDTO struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Username   string     `json:"username"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
	Likes      *[]LikeDTO `json:"likes,omitempty"`
	LikesCount *int64     `json:"likesCount,omitempty"`
	Liked      *[]LikeDTO `json:"liked,omitempty"`
	LikedCount *int64     `json:"likedCount,omitempty"`
}

// LikeDTO is one like edge together with the counterpart user's name.
type LikeDTO struct {
	UserID      uint64 `json:"_user_id"`
	UserLikedID uint64 `json:"_user_liked_id"`
	Name        string `json:"name,omitempty"`
	Username    string `json:"username"`
}

// UserSummaryDTO is the view returned for another user's profile.
type UserSummaryDTO struct {
	Username   string `json:"username"`
	LikesCount int64  `json:"likesCount"`
}

// AuthDTO is returned by signup and login.
type AuthDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// MessageDTO carries a plain message.
type MessageDTO struct {
	Message string `json:"message"`
}

// FormatTime renders a timestamp as DD-MM-YYYY HH:mm:ss in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(constants.DateTimeLayout)
}

// ToUserDTO converts an account to its public view.
func ToUserDTO(account *services.Account) UserDTO {
	user := account.User
	view := UserDTO{
		ID:         user.ID,
		Name:       user.DisplayName(),
		Username:   user.Username,
		CreatedAt:  FormatTime(user.CreatedAt),
		UpdatedAt:  FormatTime(user.UpdatedAt),
		LikesCount: account.LikesCount,
		LikedCount: account.LikedCount,
	}

	if account.Likes != nil {
		likes := toLikeDTOs(account.Likes, func(like models.UserLike) *models.User { return &like.Liker })
		view.Likes = &likes
	}
	if account.Liked != nil {
		liked := toLikeDTOs(account.Liked, func(like models.UserLike) *models.User { return &like.Likee })
		view.Liked = &liked
	}

	return view
}

// ToUserDTOs converts a list of accounts.
func ToUserDTOs(accounts []*services.Account) []UserDTO {
	views := make([]UserDTO, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, ToUserDTO(account))
	}
	return views
}

// ToUserSummaryDTO converts an account with a loaded likes count.
func ToUserSummaryDTO(account *services.Account) UserSummaryDTO {
	summary := UserSummaryDTO{Username: account.User.Username}
	if account.LikesCount != nil {
		summary.LikesCount = *account.LikesCount
	}
	return summary
}

func toLikeDTOs(likes []models.UserLike, counterpart func(models.UserLike) *models.User) []LikeDTO {
	views := make([]LikeDTO, 0, len(likes))
	for _, like := range likes {
		other := counterpart(like)
		views = append(views, LikeDTO{
			UserID:      like.UserID,
			UserLikedID: like.UserLikedID,
			Name:        other.DisplayName(),
			Username:    other.Username,
		})
	}
	return views
}
