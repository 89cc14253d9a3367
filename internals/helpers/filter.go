package helper

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

/* ===============================
   Filter DSL
   ?filter=rent_price >= 500 and floor = 2 and room_number ~ A1
   Clauses joined by "and"; ops: = != >= <= > < ~ (ILIKE)
=================================*/

type FilterClause struct {
	Field string
	Op    string
	Value string
}

// ops ordered so that two-char operators match before their one-char prefix.
var filterOps = []string{">=", "<=", "!=", "=", ">", "<", "~"}

// ParseFilter parses the filter DSL into clauses, accepting only fields in
// allowed. A clause on an unknown field or with a malformed shape errors the
// whole filter — list endpoints answer 400 instead of silently ignoring it.
func ParseFilter(raw string, allowed map[string]string) ([]FilterClause, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := splitAnd(raw)
	clauses := make([]FilterClause, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clause, err := parseClause(part, allowed)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// ApplyFilter parses raw and chains Where clauses onto tx. allowed maps
// DSL field name → real column name (whitelist doubles as rename map).
func ApplyFilter(tx *gorm.DB, raw string, allowed map[string]string) (*gorm.DB, error) {
	clauses, err := ParseFilter(raw, allowed)
	if err != nil {
		return nil, err
	}
	for _, cl := range clauses {
		column := allowed[cl.Field]
		switch cl.Op {
		case "~":
			tx = tx.Where(column+" ILIKE ?", "%"+cl.Value+"%")
		case "!=":
			tx = tx.Where(column+" <> ?", cl.Value)
		default:
			tx = tx.Where(column+" "+cl.Op+" ?", cl.Value)
		}
	}
	return tx, nil
}

func parseClause(part string, allowed map[string]string) (FilterClause, error) {
	for _, op := range filterOps {
		idx := strings.Index(part, op)
		if idx <= 0 {
			continue
		}
		field := strings.TrimSpace(part[:idx])
		value := strings.TrimSpace(part[idx+len(op):])
		if field == "" || value == "" {
			return FilterClause{}, fmt.Errorf("malformed filter clause %q", part)
		}
		if _, ok := allowed[field]; !ok {
			return FilterClause{}, fmt.Errorf("unknown filter field %q", field)
		}
		return FilterClause{Field: field, Op: op, Value: value}, nil
	}
	return FilterClause{}, fmt.Errorf("no operator in filter clause %q", part)
}

// splitAnd splits on the keyword "and" surrounded by spaces, case-insensitive,
// so values containing the letters "and" stay intact.
func splitAnd(raw string) []string {
	var parts []string
	rest := raw
	for {
		idx := indexFoldWord(rest, "and")
		if idx < 0 {
			parts = append(parts, rest)
			return parts
		}
		parts = append(parts, rest[:idx])
		rest = rest[idx+len(" and "):]
	}
}

func indexFoldWord(s, word string) int {
	target := " " + word + " "
	lower := strings.ToLower(s)
	return strings.Index(lower, target)
}
