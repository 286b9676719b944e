package team

const (
	StatusSuspended = "suspended"
	StatusAccepted  = "accepted"
	StatusDenied    = "denied"
)

// Team is a registered intramural team. Name works as the lookup key but the
// store does not enforce uniqueness.
type Team struct {
	Name      string `json:"name" validate:"required"`
	CaptainID int64  `json:"captainId"`
	Sport     string `json:"sport" validate:"required"`
	Status    string `json:"status"`
}
