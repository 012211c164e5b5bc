// Package querybuilder renders the small set of postgres statements the
// repositories need, with $n placeholders numbered in argument order.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// binder collects arguments and hands out their placeholders.
type binder struct {
	args []any
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *binder) where(conditions []Condition) string {
	if len(conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		parts = append(parts, c.render(b))
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, terms...)
	return s
}

func (s *SelectBuilder) Limit(n int) *SelectBuilder {
	s.limit = n
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(s.columns) == 0:
		return "", nil, fmt.Errorf("select: no columns")
	case strings.TrimSpace(s.table) == "":
		return "", nil, fmt.Errorf("select: no table")
	}

	var b binder
	query := "SELECT " + strings.Join(s.columns, ", ") + " FROM " + s.table + b.where(s.where)
	if len(s.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(s.orderBy, ", ")
	}
	if s.limit > 0 {
		query += " LIMIT " + strconv.Itoa(s.limit)
	}
	return query, b.args, nil
}

type UpdateBuilder struct {
	table       string
	assignments []Condition
	where       []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.assignments = append(u.assignments, Eq(column, value))
	return u
}

// SetExpr assigns a raw SQL expression; each ? in expr binds the next arg.
func (u *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	u.assignments = append(u.assignments, Expr(column+" = "+expr, args...))
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(u.table) == "":
		return "", nil, fmt.Errorf("update: no table")
	case len(u.assignments) == 0:
		return "", nil, fmt.Errorf("update: nothing to set")
	case len(u.where) == 0:
		return "", nil, fmt.Errorf("update: refusing to update every row of %s", u.table)
	}

	var b binder
	sets := make([]string, 0, len(u.assignments))
	for _, a := range u.assignments {
		sets = append(sets, a.render(&b))
	}
	return "UPDATE " + u.table + " SET " + strings.Join(sets, ", ") + b.where(u.where), b.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (d *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	d.where = append(d.where, conditions...)
	return d
}

func (d *DeleteBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(d.table) == "":
		return "", nil, fmt.Errorf("delete: no table")
	case len(d.where) == 0:
		return "", nil, fmt.Errorf("delete: refusing to delete every row of %s", d.table)
	}

	var b binder
	return "DELETE FROM " + d.table + b.where(d.where), b.args, nil
}
