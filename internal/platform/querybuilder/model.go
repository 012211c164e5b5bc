package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InsertRow builds a single-row INSERT from the `db` tagged fields of row.
func InsertRow[T any](table string, row T) (string, []any, error) {
	return InsertRows(table, []T{row})
}

// InsertRows builds one multi-row INSERT so the rows land atomically even
// outside a transaction.
func InsertRows[T any](table string, rows []T) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, fmt.Errorf("insert: no table")
	}
	if len(rows) == 0 {
		return "", nil, fmt.Errorf("insert: no rows")
	}

	var (
		b       binder
		columns []string
		tuples  = make([]string, 0, len(rows))
	)
	for i, row := range rows {
		cols, vals, err := taggedFields(row)
		if err != nil {
			return "", nil, fmt.Errorf("insert row %d: %w", i, err)
		}
		if i == 0 {
			columns = cols
		} else if !slices.Equal(cols, columns) {
			return "", nil, fmt.Errorf("insert row %d: columns differ from row 0", i)
		}

		placeholders := make([]string, 0, len(vals))
		for _, v := range vals {
			placeholders = append(placeholders, b.bind(v))
		}
		tuples = append(tuples, "("+strings.Join(placeholders, ", ")+")")
	}

	query := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES " + strings.Join(tuples, ", ")
	return query, b.args, nil
}

func taggedFields(row any) ([]string, []any, error) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("nil row")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("row must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	var (
		cols []string
		vals []any
	)
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if col = strings.TrimSpace(col); col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("row has no db tagged fields")
	}
	return cols, vals, nil
}
