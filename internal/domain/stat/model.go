package stat

// Key is the business identity of a basketball stat line: one record per
// player per game.
type Key struct {
	UserID int64
	GameID int64
}

// Basketball is one player's box score for one game.
type Basketball struct {
	ID       int64  `json:"statId"`
	UserID   int64  `json:"userId" validate:"required"`
	GameID   int64  `json:"gameId" validate:"required"`
	TeamName string `json:"teamName"`
	Points   int    `json:"points" validate:"gte=0"`
	Rebounds int    `json:"rebounds" validate:"gte=0"`
	Assists  int    `json:"assists" validate:"gte=0"`
	Steals   int    `json:"steals" validate:"gte=0"`
}

func (b Basketball) Key() Key {
	return Key{UserID: b.UserID, GameID: b.GameID}
}

// MergeFrom copies the mutable fields of in onto b. Identity fields (ID,
// UserID, GameID) are left as they are.
func (b *Basketball) MergeFrom(in Basketball) {
	b.TeamName = in.TeamName
	b.Points = in.Points
	b.Rebounds = in.Rebounds
	b.Assists = in.Assists
	b.Steals = in.Steals
}
