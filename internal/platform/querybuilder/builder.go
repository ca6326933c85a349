package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect controls identifier quoting.
type Dialect int

const (
	Postgres Dialect = iota
	BigQuery
)

func (d Dialect) QuoteIdent(parts ...string) string {
	quoted := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch d {
		case BigQuery:
			quoted = append(quoted, "`"+strings.ReplaceAll(part, "`", "")+"`")
		default:
			quoted = append(quoted, `"`+strings.ReplaceAll(part, `"`, `""`)+`"`)
		}
	}
	return strings.Join(quoted, ".")
}

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type orderTerm struct {
	column    string
	direction Direction
	nullsLast bool
}

type SelectBuilder struct {
	dialect Dialect
	columns []string
	table   string
	orderBy []orderTerm
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) Dialect(d Dialect) *SelectBuilder {
	b.dialect = d
	return b
}

// From sets the source relation; qualified names are quoted per part.
func (b *SelectBuilder) From(parts ...string) *SelectBuilder {
	b.table = b.dialect.QuoteIdent(parts...)
	return b
}

func (b *SelectBuilder) OrderBy(column string, direction Direction) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderTerm{column: column, direction: direction})
	return b
}

// OrderByNullsLast orders by column while keeping nulls at the end in both
// directions.
func (b *SelectBuilder) OrderByNullsLast(column string, direction Direction) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderTerm{column: column, direction: direction, nullsLast: true})
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, error) {
	if len(b.columns) == 0 {
		return "", fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)
	appendOrderByClause(&buf, b.orderBy)
	appendLimitClause(&buf, b.limit)

	return buf.String(), nil
}

func appendOrderByClause(buf *strings.Builder, terms []orderTerm) {
	if len(terms) == 0 {
		return
	}
	buf.WriteString(" ORDER BY ")
	for i, term := range terms {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(term.column)
		direction := term.direction
		if direction == "" {
			direction = Asc
		}
		buf.WriteString(" ")
		buf.WriteString(string(direction))
		if term.nullsLast {
			buf.WriteString(" NULLS LAST")
		}
	}
}

func appendLimitClause(buf *strings.Builder, limit int) {
	if limit <= 0 {
		return
	}
	buf.WriteString(" LIMIT ")
	buf.WriteString(strconv.Itoa(limit))
}
