package postgres

import "database/sql"

type userTableModel struct {
	ID             int64          `db:"id"`
	Username       string         `db:"username"`
	Password       string         `db:"password"`
	Role           string         `db:"role"`
	HeightInches   int            `db:"height_inches"`
	WeightLbs      int            `db:"weight_lbs"`
	ProfilePic     sql.NullString `db:"profile_pic"`
	HideBiometrics bool           `db:"hide_biometrics"`
}
