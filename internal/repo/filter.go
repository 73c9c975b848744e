package repo

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Op int

const (
	OpEq Op = iota
	OpNe
	OpContains
	OpIn
)

// Cond is a single column predicate. Column names are quoted by gorm and
// values are always bound, so a Cond never splices caller text into SQL.
type Cond struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of conditions. The zero Filter matches every row.
type Filter []Cond

func Where(conds ...Cond) Filter { return Filter(conds) }

func (f Filter) And(conds ...Cond) Filter {
	out := make(Filter, 0, len(f)+len(conds))
	out = append(out, f...)
	return append(out, conds...)
}

func Eq(field string, v any) Cond { return Cond{Field: field, Op: OpEq, Value: v} }

func Ne(field string, v any) Cond { return Cond{Field: field, Op: OpNe, Value: v} }

func Contains(field, substr string) Cond { return Cond{Field: field, Op: OpContains, Value: substr} }

// In matches rows whose field equals any element of the slice v.
func In(field string, v any) Cond { return Cond{Field: field, Op: OpIn, Value: v} }

func ByID(id uint) Cond { return Eq("id", id) }

func NotDeleted() Cond { return Eq("is_deleted", false) }

// likeEscaper makes LIKE wildcards in caller text match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f Filter) apply(db *gorm.DB) (*gorm.DB, error) {
	for _, c := range f {
		if c.Field == "" {
			return nil, fmt.Errorf("repo: filter condition without field")
		}
		col := clause.Column{Name: c.Field}
		switch c.Op {
		case OpEq:
			db = db.Where(clause.Eq{Column: col, Value: c.Value})
		case OpNe:
			db = db.Where(clause.Neq{Column: col, Value: c.Value})
		case OpContains:
			pattern := "%" + likeEscaper.Replace(fmt.Sprint(c.Value)) + "%"
			db = db.Where(clause.Expr{SQL: "? LIKE ? ESCAPE '\\'", Vars: []any{col, pattern}})
		case OpIn:
			values, err := toSlice(c.Value)
			if err != nil {
				return nil, err
			}
			if len(values) == 0 {
				// IN () is not valid SQL on every dialect
				db = db.Where("1 = 0")
				continue
			}
			db = db.Where(clause.IN{Column: col, Values: values})
		default:
			return nil, fmt.Errorf("repo: unknown filter operator %d", c.Op)
		}
	}
	return db, nil
}

func toSlice(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("repo: In expects a slice, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
