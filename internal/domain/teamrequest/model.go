package teamrequest

// Status of a membership request. A request moves from pending to either
// accepted or denied.
type Status string

const (
	StatusUnset    Status = ""
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDenied   Status = "denied"
)

// TeamRequest links a requesting user to the team they want to join.
type TeamRequest struct {
	ID          int64  `json:"teamRequestId"`
	RequesterID int64  `json:"requesterId" validate:"required"`
	TeamName    string `json:"teamName" validate:"required"`
	TeamID      int64  `json:"teamId"`
	Status      Status `json:"teamRequestStatus"`
}

func (r TeamRequest) IsDecided() bool {
	return r.Status == StatusAccepted || r.Status == StatusDenied
}
