package seed

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	"github.com/jsx-dev/intramural-league/internal/domain/team"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
)

// File is the on-disk seed document. Field names follow the JSON tags of the
// domain types.
type File struct {
	Users           []user.User               `json:"users" validate:"dive"`
	Teams           []team.Team               `json:"teams" validate:"dive"`
	TeamRequests    []teamrequest.TeamRequest `json:"teamRequests" validate:"dive"`
	BasketballStats []stat.Basketball         `json:"basketballStats" validate:"dive"`
}

func (f File) Len() int {
	return len(f.Users) + len(f.Teams) + len(f.TeamRequests) + len(f.BasketballStats)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a seed document and rejects it as a whole if any record fails
// validation.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := sonic.ConfigStd.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("validate seed file: %w", err)
	}
	return f, nil
}
