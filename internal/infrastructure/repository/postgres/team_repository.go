package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jsx-dev/intramural-league/internal/domain/team"
	qb "github.com/jsx-dev/intramural-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db    *sqlx.DB
	guard Guard
}

func NewTeamRepository(db *sqlx.DB, guard Guard) *TeamRepository {
	return &TeamRepository{db: db, guard: guard}
}

// FindAll lists teams in insertion order.
func (r *TeamRepository) FindAll(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.guard.run("select teams", func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			Name:      row.Name,
			CaptainID: row.CaptainID,
			Sport:     row.Sport,
			Status:    row.Status,
		})
	}

	return out, nil
}

func (r *TeamRepository) Save(ctx context.Context, item team.Team) (team.Team, error) {
	const insertTeamQuery = `
INSERT INTO teams (name, captain_id, sport, status)
VALUES (:name, :captain_id, :sport, :status)`

	query, args, err := sqlx.Named(insertTeamQuery, map[string]any{
		"name":       item.Name,
		"captain_id": item.CaptainID,
		"sport":      item.Sport,
		"status":     item.Status,
	})
	if err != nil {
		return team.Team{}, fmt.Errorf("bind insert team query: %w", err)
	}
	query = r.db.Rebind(query)

	if err := r.guard.run("insert team", func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	}); err != nil {
		return team.Team{}, err
	}

	return item, nil
}
