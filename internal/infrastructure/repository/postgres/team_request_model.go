package postgres

type teamRequestTableModel struct {
	ID          int64  `db:"id"`
	RequesterID int64  `db:"requester_id"`
	TeamName    string `db:"team_name"`
	TeamID      int64  `db:"team_id"`
	Status      string `db:"status"`
}
