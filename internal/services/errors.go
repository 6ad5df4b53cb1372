package services

import (
	"strconv"

	apierrors "github.com/fidomax07/vetting-api/internal/errors"
)

var (
	ErrInvalidCredentials  = apierrors.Unauthorized("")
	ErrUnauthenticated     = apierrors.Unauthorized("")
	ErrOldPasswordMismatch = apierrors.Unauthorized("Old password does not match.")
	ErrSelfVetting         = apierrors.InvalidOperation("You cannot like/unlike yourself.")
	ErrAlreadyLiked        = apierrors.InvalidOperation("You already liked this user.")
	ErrNotLiked            = apierrors.InvalidOperation("You did not like this user.")
	ErrUserNotFound        = apierrors.NotFound("User not found.")
	ErrInvalidUserID       = apierrors.NotFound("Invalid user id.")
	ErrUsernameTaken       = apierrors.ValidationField("username", "The username has already been taken.")
)

// ParseUserID parses a path identifier. Anything but a positive base-10
// integer is reported as not found.
func ParseUserID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}
