package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jsx-dev/intramural-league/internal/domain/persistence"
	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	qb "github.com/jsx-dev/intramural-league/internal/platform/querybuilder"
)

type TeamRequestRepository struct {
	db    *sqlx.DB
	guard Guard
}

func NewTeamRequestRepository(db *sqlx.DB, guard Guard) *TeamRequestRepository {
	return &TeamRequestRepository{db: db, guard: guard}
}

func (r *TeamRequestRepository) FindAll(ctx context.Context) ([]teamrequest.TeamRequest, error) {
	query, args, err := qb.Select("*").From("team_requests").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select team requests query: %w", err)
	}

	var rows []teamRequestTableModel
	if err := r.guard.run("select team requests", func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, err
	}

	out := make([]teamrequest.TeamRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamRequestFromRow(row))
	}

	return out, nil
}

// Save inserts item. An unset status is left to the column default (pending).
func (r *TeamRequestRepository) Save(ctx context.Context, item teamrequest.TeamRequest) (teamrequest.TeamRequest, error) {
	columns := []string{"requester_id", "team_name", "team_id"}
	values := []any{item.RequesterID, item.TeamName, item.TeamID}
	if item.Status != teamrequest.StatusUnset {
		columns = append(columns, "status")
		values = append(values, string(item.Status))
	}

	query, args, err := qb.InsertInto("team_requests").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return teamrequest.TeamRequest{}, fmt.Errorf("build insert team request query: %w", err)
	}

	var row teamRequestTableModel
	if err := r.guard.run("insert team request", func() error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		return teamrequest.TeamRequest{}, err
	}

	return teamRequestFromRow(row), nil
}

func (r *TeamRequestRepository) Update(ctx context.Context, item teamrequest.TeamRequest) error {
	query, args, err := qb.UpdateByID("team_requests", item.ID).
		Set("requester_id", item.RequesterID).
		Set("team_name", item.TeamName).
		Set("team_id", item.TeamID).
		Set("status", string(item.Status)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update team request query: %w", err)
	}

	var affected int64
	if err := r.guard.run("update team request", func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	}); err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: team request id=%d", persistence.ErrNotFound, item.ID)
	}

	return nil
}

func teamRequestFromRow(row teamRequestTableModel) teamrequest.TeamRequest {
	return teamrequest.TeamRequest{
		ID:          row.ID,
		RequesterID: row.RequesterID,
		TeamName:    row.TeamName,
		TeamID:      row.TeamID,
		Status:      teamrequest.Status(row.Status),
	}
}
