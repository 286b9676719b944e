package postgres

type basketballStatTableModel struct {
	ID       int64  `db:"id"`
	UserID   int64  `db:"user_id"`
	GameID   int64  `db:"game_id"`
	TeamName string `db:"team_name"`
	Points   int    `db:"points"`
	Rebounds int    `db:"rebounds"`
	Assists  int    `db:"assists"`
	Steals   int    `db:"steals"`
}

// basketballStatInsertModel is the column set written on insert; the id comes
// from the sequence.
type basketballStatInsertModel struct {
	UserID   int64  `db:"user_id"`
	GameID   int64  `db:"game_id"`
	TeamName string `db:"team_name"`
	Points   int    `db:"points"`
	Rebounds int    `db:"rebounds"`
	Assists  int    `db:"assists"`
	Steals   int    `db:"steals"`
}
