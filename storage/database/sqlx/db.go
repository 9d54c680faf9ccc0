// Package sqlxrepos implements the repositories on PostgreSQL with sqlx and squirrel.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ujumbe/core"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func newID() string {
	return uuid.New().String()
}

func selectRows(ctx context.Context, db *sqlx.DB, dest interface{}, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return db.SelectContext(ctx, dest, query, args...)
}

// getRow returns sql.ErrNoRows when nothing matches.
func getRow(ctx context.Context, db *sqlx.DB, dest interface{}, b sq.SelectBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return db.GetContext(ctx, dest, query, args...)
}

func exec(ctx context.Context, db *sqlx.DB, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func count(ctx context.Context, db *sqlx.DB, table string, where sq.Sqlizer) (int, error) {
	var n int
	b := psql.Select("COUNT(*)").From(table)
	if where != nil {
		b = b.Where(where)
	}
	err := getRow(ctx, db, &n, b)
	return n, err
}

// orderBy applies the orderings whose field is one of columns.
func orderBy(b sq.SelectBuilder, ordering []core.DBOrdering, columns map[string]string) sq.SelectBuilder {
	allowed := make(map[string]bool, len(columns))
	for _, col := range columns {
		allowed[col] = true
	}
	for _, ord := range ordering {
		if allowed[ord.Field] {
			b = b.OrderBy(ord.String())
		}
	}
	return b
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func contains(column string, val string) sq.Sqlizer {
	return sq.Expr("? = ANY("+column+")", val)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ilike matches val literally anywhere in the column, as the in-memory store does.
func ilike(val string) string {
	return "%" + likeEscaper.Replace(val) + "%"
}

func nullString(s string) null.String {
	return null.NewString(s, s != "")
}

func nullTime(t time.Time) null.Time {
	return null.NewTime(t.UTC(), !t.IsZero())
}

func stringSlice(a pq.StringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}

func stringArray(ss []string) pq.StringArray {
	if ss == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(ss)
}
