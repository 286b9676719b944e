// Package querybuilder renders PostgreSQL statements for the sqlx repositories.
package querybuilder

import (
	sq "github.com/Masterminds/squirrel"
)

// Eq is an equality predicate. Multiple keys are ANDed in sorted key order.
type Eq = sq.Eq

// psql numbers placeholders $1..$n for lib/pq.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Select(columns ...string) sq.SelectBuilder {
	return psql.Select(columns...)
}

func InsertInto(table string) sq.InsertBuilder {
	return psql.Insert(table)
}

// UpdateByID starts an UPDATE scoped to a single primary key. There is no
// unscoped variant.
func UpdateByID(table string, id int64) sq.UpdateBuilder {
	return psql.Update(table).Where(Eq{"id": id})
}
