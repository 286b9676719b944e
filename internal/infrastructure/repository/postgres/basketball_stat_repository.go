package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jsx-dev/intramural-league/internal/domain/persistence"
	"github.com/jsx-dev/intramural-league/internal/domain/stat"
	qb "github.com/jsx-dev/intramural-league/internal/platform/querybuilder"
)

type BasketballStatRepository struct {
	db    *sqlx.DB
	guard Guard
}

func NewBasketballStatRepository(db *sqlx.DB, guard Guard) *BasketballStatRepository {
	return &BasketballStatRepository{db: db, guard: guard}
}

func (r *BasketballStatRepository) FindAll(ctx context.Context) ([]stat.Basketball, error) {
	query, args, err := qb.Select("*").From("basketball_stats").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select basketball stats query: %w", err)
	}

	return r.selectStats(ctx, "select basketball stats", query, args)
}

func (r *BasketballStatRepository) FindAllByGameID(ctx context.Context, gameID int64) ([]stat.Basketball, error) {
	query, args, err := qb.Select("*").From("basketball_stats").
		Where(qb.Eq{"game_id": gameID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select basketball stats by game query: %w", err)
	}

	return r.selectStats(ctx, "select basketball stats by game", query, args)
}

func (r *BasketballStatRepository) Save(ctx context.Context, item stat.Basketball) (stat.Basketball, error) {
	query, args, err := qb.InsertModel("basketball_stats", basketballStatInsertModel{
		UserID:   item.UserID,
		GameID:   item.GameID,
		TeamName: item.TeamName,
		Points:   item.Points,
		Rebounds: item.Rebounds,
		Assists:  item.Assists,
		Steals:   item.Steals,
	}, "RETURNING *")
	if err != nil {
		return stat.Basketball{}, fmt.Errorf("build insert basketball stat query: %w", err)
	}

	var row basketballStatTableModel
	if err := r.guard.run("insert basketball stat", func() error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		return stat.Basketball{}, err
	}

	return basketballStatFromRow(row), nil
}

func (r *BasketballStatRepository) Update(ctx context.Context, item stat.Basketball) error {
	query, args, err := qb.UpdateByID("basketball_stats", item.ID).
		Set("user_id", item.UserID).
		Set("game_id", item.GameID).
		Set("team_name", item.TeamName).
		Set("points", item.Points).
		Set("rebounds", item.Rebounds).
		Set("assists", item.Assists).
		Set("steals", item.Steals).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update basketball stat query: %w", err)
	}

	var affected int64
	if err := r.guard.run("update basketball stat", func() error {
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
		return fmt.Errorf("%w: basketball stat id=%d", persistence.ErrNotFound, item.ID)
	}

	return nil
}

func (r *BasketballStatRepository) selectStats(ctx context.Context, op, query string, args []any) ([]stat.Basketball, error) {
	var rows []basketballStatTableModel
	if err := r.guard.run(op, func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, err
	}

	out := make([]stat.Basketball, 0, len(rows))
	for _, row := range rows {
		out = append(out, basketballStatFromRow(row))
	}

	return out, nil
}

func basketballStatFromRow(row basketballStatTableModel) stat.Basketball {
	return stat.Basketball{
		ID:       row.ID,
		UserID:   row.UserID,
		GameID:   row.GameID,
		TeamName: row.TeamName,
		Points:   row.Points,
		Rebounds: row.Rebounds,
		Assists:  row.Assists,
		Steals:   row.Steals,
	}
}
