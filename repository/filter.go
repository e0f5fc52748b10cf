package repository

import (
	"strings"

	"gorm.io/gorm"
)

type FilterOp int

const (
	// FilterPrefix is a case-sensitive "starts with" match on a string column.
	FilterPrefix FilterOp = iota
	// FilterEquals is an exact match.
	FilterEquals
	// FilterGreaterThan is a strictly-greater-than match.
	FilterGreaterThan
)

// Filter is one criterion of a composite predicate. Filters are always
// combined with AND; absent criteria are simply not added to the slice.
type Filter struct {
	Column string
	Op     FilterOp
	Value  interface{}
}

func Prefix(column, prefix string) Filter {
	return Filter{Column: column, Op: FilterPrefix, Value: prefix}
}

func Equals(column string, value interface{}) Filter {
	return Filter{Column: column, Op: FilterEquals, Value: value}
}

func GreaterThan(column string, value interface{}) Filter {
	return Filter{Column: column, Op: FilterGreaterThan, Value: value}
}

// ApplyFilters chains every filter onto the query as a WHERE condition,
// in slice order.
func ApplyFilters(db *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		switch f.Op {
		case FilterPrefix:
			prefix, _ := f.Value.(string)
			db = db.Where(f.Column+` LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")
		case FilterEquals:
			db = db.Where(f.Column+" = ?", f.Value)
		case FilterGreaterThan:
			db = db.Where(f.Column+" > ?", f.Value)
		}
	}
	return db
}

// escapeLike escapes LIKE metacharacters so prefix values match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
