package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jsx-dev/intramural-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo data set into an empty database. It does
// nothing once any user row exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users`); err != nil {
		return wrapDBError(err, "count users for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapDBError(err, "begin seed tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		if err := execNamed(ctx, tx, `
INSERT INTO users (id, username, password, role, height_inches, weight_lbs, profile_pic, hide_biometrics)
VALUES (:id, :username, :password, :role, :height_inches, :weight_lbs, :profile_pic, :hide_biometrics)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":              u.ID,
			"username":        u.Username,
			"password":        u.Password,
			"role":            u.Role,
			"height_inches":   u.HeightInches,
			"weight_lbs":      u.WeightLbs,
			"profile_pic":     stringToNullString(u.ProfilePic),
			"hide_biometrics": u.HideBiometrics,
		}); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		if err := execNamed(ctx, tx, `
INSERT INTO teams (name, captain_id, sport, status)
VALUES (:name, :captain_id, :sport, :status)`, map[string]any{
			"name":       t.Name,
			"captain_id": t.CaptainID,
			"sport":      t.Sport,
			"status":     t.Status,
		}); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
	}

	for _, req := range memory.SeedTeamRequests() {
		if err := execNamed(ctx, tx, `
INSERT INTO team_requests (id, requester_id, team_name, team_id, status)
VALUES (:id, :requester_id, :team_name, :team_id, :status)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           req.ID,
			"requester_id": req.RequesterID,
			"team_name":    req.TeamName,
			"team_id":      req.TeamID,
			"status":       string(req.Status),
		}); err != nil {
			return fmt.Errorf("seed team request %d: %w", req.ID, err)
		}
	}

	for _, s := range memory.SeedBasketballStats() {
		if err := execNamed(ctx, tx, `
INSERT INTO basketball_stats (id, user_id, game_id, team_name, points, rebounds, assists, steals)
VALUES (:id, :user_id, :game_id, :team_name, :points, :rebounds, :assists, :steals)
ON CONFLICT (user_id, game_id) DO NOTHING`, map[string]any{
			"id":        s.ID,
			"user_id":   s.UserID,
			"game_id":   s.GameID,
			"team_name": s.TeamName,
			"points":    s.Points,
			"rebounds":  s.Rebounds,
			"assists":   s.Assists,
			"steals":    s.Steals,
		}); err != nil {
			return fmt.Errorf("seed basketball stat user=%d game=%d: %w", s.UserID, s.GameID, err)
		}
	}

	// Explicit ids above leave the sequences behind.
	for _, table := range []string{"users", "team_requests", "basketball_stats"} {
		resync := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s`, table, table)
		if _, err := tx.ExecContext(ctx, resync); err != nil {
			return wrapDBError(err, "resync "+table+" id sequence")
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapDBError(err, "commit seed tx")
	}

	return nil
}

func execNamed(ctx context.Context, tx *sqlx.Tx, query string, arg map[string]any) error {
	sqlQuery, args, err := sqlx.Named(query, arg)
	if err != nil {
		return fmt.Errorf("bind query: %w", err)
	}
	sqlQuery = tx.Rebind(sqlQuery)
	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return wrapDBError(err, "exec")
	}
	return nil
}
