package querybuilder

import "strings"

// Condition is one predicate of a WHERE clause.
type Condition interface {
	render(b *binder) string
}

type comparison struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return comparison{column: column, op: "=", value: value}
}

func Lte(column string, value any) Condition {
	return comparison{column: column, op: "<=", value: value}
}

func (c comparison) render(b *binder) string {
	return c.column + " " + c.op + " " + b.bind(c.value)
}

type disjunction []Condition

// Or matches when any of conditions does. With no conditions it matches nothing.
func Or(conditions ...Condition) Condition {
	return disjunction(conditions)
}

func (d disjunction) render(b *binder) string {
	if len(d) == 0 {
		return "FALSE"
	}
	parts := make([]string, 0, len(d))
	for _, c := range d {
		parts = append(parts, c.render(b))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

type expression struct {
	sql  string
	args []any
}

// Expr is a raw predicate; each ? binds the next arg in order.
func Expr(sql string, args ...any) Condition {
	return expression{sql: sql, args: args}
}

func (e expression) render(b *binder) string {
	if len(e.args) == 0 {
		return e.sql
	}
	var out strings.Builder
	next := 0
	for _, r := range e.sql {
		if r == '?' && next < len(e.args) {
			out.WriteString(b.bind(e.args[next]))
			next++
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
