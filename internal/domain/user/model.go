package user

import (
	"fmt"

	"github.com/jsx-dev/intramural-league/internal/domain/persistence"
)

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

var (
	ErrNotFound         = fmt.Errorf("%w: user", persistence.ErrNotFound)
	ErrUsernameNotFound = fmt.Errorf("%w: username", persistence.ErrNotFound)
)

// User is an intramural account. Password is compared by equality; hashing, if
// any, happens before it reaches this type.
type User struct {
	ID             int64  `json:"userId"`
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	Role           string `json:"role"`
	HeightInches   int    `json:"heightInches" validate:"gte=0"`
	WeightLbs      int    `json:"weightLbs" validate:"gte=0"`
	ProfilePic     string `json:"profilePic"`
	HideBiometrics bool   `json:"hideBiometrics"`
}

type LoginCredentials struct {
	Username string
	Password string
}
