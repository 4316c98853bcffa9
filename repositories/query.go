package repositories

import (
	"fmt"
	"strconv"
	"strings"
)

// condition is a WHERE fragment using '?' placeholders; they are rewritten
// to postgres $n placeholders when the query is built.
type condition struct {
	expr string
	args []any
}

func eq(column string, value any) condition {
	return condition{expr: column + " = ?", args: []any{value}}
}

func expr(sql string, args ...any) condition {
	return condition{expr: sql, args: args}
}

type selectBuilder struct {
	columns []string
	from    string
	joins   []string
	where   []condition
	orderBy []string
}

func selectColumns(columns ...string) *selectBuilder {
	return &selectBuilder{columns: append([]string(nil), columns...)}
}

func (b *selectBuilder) From(table string) *selectBuilder {
	b.from = table
	return b
}

func (b *selectBuilder) Join(clause string) *selectBuilder {
	b.joins = append(b.joins, clause)
	return b
}

func (b *selectBuilder) Where(conditions ...condition) *selectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *selectBuilder) OrderBy(parts ...string) *selectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *selectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.from) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.from)
	for _, j := range b.joins {
		buf.WriteString(" ")
		buf.WriteString(j)
	}

	args := make([]any, 0, len(b.where))
	if len(b.where) > 0 {
		buf.WriteString(" WHERE ")
		for i, c := range b.where {
			if i > 0 {
				buf.WriteString(" AND ")
			}
			buf.WriteString(rewritePlaceholders(c.expr, c.args, &args))
		}
	}

	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}

	return buf.String(), args, nil
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			*args = append(*args, exprArgs[next])
			out.WriteString("$" + strconv.Itoa(len(*args)))
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}
