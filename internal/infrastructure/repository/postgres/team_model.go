package postgres

type teamTableModel struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	CaptainID int64  `db:"captain_id"`
	Sport     string `db:"sport"`
	Status    string `db:"status"`
}
