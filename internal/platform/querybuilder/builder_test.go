package querybuilder

import (
	"reflect"
	"strings"
	"testing"
)

// compact drops the optional space after commas so assertions do not depend
// on how the list separators are rendered.
func compact(query string) string {
	return strings.ReplaceAll(query, ", ", ",")
}

func TestSelect(t *testing.T) {
	t.Parallel()

	query, args, err := Select("DISTINCT u.*").
		From("users u JOIN team_requests tr ON tr.requester_id = u.id").
		Where(Eq{"tr.team_name": "Aliens", "tr.status": "accepted"}).
		OrderBy("u.id").
		Limit(10).
		ToSql()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	// Eq keys render in sorted order.
	wantQuery := "SELECT DISTINCT u.* FROM users u JOIN team_requests tr ON tr.requester_id = u.id WHERE tr.status = $1 AND tr.team_name = $2 ORDER BY u.id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"accepted", "Aliens"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertInto(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("team_requests").
		Columns("requester_id", "team_name", "team_id").
		Values(int64(1), "The Ballers", int64(5)).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO team_requests (requester_id,team_name,team_id) VALUES ($1,$2,$3) RETURNING *"
	if compact(query) != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{int64(1), "The Ballers", int64(5)}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateByID(t *testing.T) {
	t.Parallel()

	query, args, err := UpdateByID("users", 7).
		Set("role", "admin").
		Set("weight_lbs", 190).
		ToSql()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	// SET placeholders come before the id even though the scope was added first.
	wantQuery := "UPDATE users SET role = $1,weight_lbs = $2 WHERE id = $3"
	if compact(query) != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"admin", 190, int64(7)}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		UserID  int64  `db:"user_id"`
		GameID  int64  `db:"game_id"`
		Team    string `db:"team_name"`
		skipped int
		Ignored string `db:"-"`
	}

	query, args, err := InsertModel("basketball_stats", row{UserID: 2, GameID: 9, Team: "Aliens", skipped: 1}, "RETURNING *")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO basketball_stats (user_id,game_id,team_name) VALUES ($1,$2,$3) RETURNING *"
	if compact(query) != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{int64(2), int64(9), "Aliens"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel_Rejects(t *testing.T) {
	t.Parallel()

	type noColumns struct {
		Name string
	}

	if _, _, err := InsertModel("basketball_stats", (*noColumns)(nil), ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("basketball_stats", noColumns{Name: "x"}, ""); err == nil {
		t.Fatalf("expected error for model without db tags")
	}
	if _, _, err := InsertModel("basketball_stats", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}
