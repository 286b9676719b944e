package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jsx-dev/intramural-league/internal/domain/teamrequest"
	"github.com/jsx-dev/intramural-league/internal/domain/user"
	qb "github.com/jsx-dev/intramural-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db    *sqlx.DB
	guard Guard
}

func NewUserRepository(db *sqlx.DB, guard Guard) *UserRepository {
	return &UserRepository{db: db, guard: guard}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	var rows []userTableModel
	if err := r.guard.run("select users", func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, err
	}

	return usersFromRows(rows), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq{"id": id}).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("build get user by id query: %w", err)
	}

	var row userTableModel
	if err := r.guard.run("get user by id", func() error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return user.User{}, fmt.Errorf("%w: id=%d", user.ErrNotFound, id)
		}
		return user.User{}, err
	}

	return userFromRow(row), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("build get user by username query: %w", err)
	}

	var row userTableModel
	if err := r.guard.run("get user by username", func() error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		if isNotFound(err) {
			return user.User{}, fmt.Errorf("%w: %q", user.ErrUsernameNotFound, username)
		}
		return user.User{}, err
	}

	return userFromRow(row), nil
}

// Save inserts item and returns the stored row. An empty role falls back to
// the column default.
func (r *UserRepository) Save(ctx context.Context, item user.User) (user.User, error) {
	columns := []string{"username", "password", "height_inches", "weight_lbs", "profile_pic", "hide_biometrics"}
	values := []any{item.Username, item.Password, item.HeightInches, item.WeightLbs, stringToNullString(item.ProfilePic), item.HideBiometrics}
	if item.Role != "" {
		columns = append(columns, "role")
		values = append(values, item.Role)
	}

	query, args, err := qb.InsertInto("users").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("build insert user query: %w", err)
	}

	var row userTableModel
	if err := r.guard.run("insert user", func() error {
		return r.db.GetContext(ctx, &row, query, args...)
	}); err != nil {
		return user.User{}, err
	}

	return userFromRow(row), nil
}

func (r *UserRepository) Update(ctx context.Context, item user.User) error {
	query, args, err := qb.UpdateByID("users", item.ID).
		Set("username", item.Username).
		Set("password", item.Password).
		Set("role", item.Role).
		Set("height_inches", item.HeightInches).
		Set("weight_lbs", item.WeightLbs).
		Set("profile_pic", stringToNullString(item.ProfilePic)).
		Set("hide_biometrics", item.HideBiometrics).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	return r.execOne(ctx, "update user", query, args, item.ID)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	query, args, err := qb.UpdateByID("users", id).
		Set("role", role).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user role query: %w", err)
	}

	return r.execOne(ctx, "update user role", query, args, id)
}

// ListByTeam returns the users holding an accepted request for teamName.
func (r *UserRepository) ListByTeam(ctx context.Context, teamName string) ([]user.User, error) {
	query, args, err := qb.Select("DISTINCT u.*").
		From("users u JOIN team_requests tr ON tr.requester_id = u.id").
		Where(qb.Eq{
			"tr.team_name": teamName,
			"tr.status":    string(teamrequest.StatusAccepted),
		}).
		OrderBy("u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select users by team query: %w", err)
	}

	var rows []userTableModel
	if err := r.guard.run("select users by team", func() error {
		return r.db.SelectContext(ctx, &rows, query, args...)
	}); err != nil {
		return nil, err
	}

	return usersFromRows(rows), nil
}

func (r *UserRepository) execOne(ctx context.Context, op, query string, args []any, id int64) error {
	var affected int64
	if err := r.guard.run(op, func() error {
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
		return fmt.Errorf("%w: id=%d", user.ErrNotFound, id)
	}

	return nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:             row.ID,
		Username:       row.Username,
		Password:       row.Password,
		Role:           row.Role,
		HeightInches:   row.HeightInches,
		WeightLbs:      row.WeightLbs,
		ProfilePic:     nullStringToString(row.ProfilePic),
		HideBiometrics: row.HideBiometrics,
	}
}

func usersFromRows(rows []userTableModel) []user.User {
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out
}
