package sqlq

import (
	r "reflect"

	"github.com/mitranim/refut"
)

// Struct tag name used for deriving column names from struct fields.
const TagNameDb = `db`

/*
Converts a struct into ordered column-value assigns, using the `db` tag of
each field for the column name. Fields without a usable `db` tag are skipped.
Embedded structs are flattened. The input may be a struct or a non-nil
pointer to one.

Used by `(*Stmt).InsertStruct` and `(*Stmt).SetStruct`:

	type Person struct {
		Name string `db:"name"`
		Age  int    `db:"age"`
	}

	sqlq.StructAssigns(Person{`Alice`, 25})
	// []Assign{{`name`, `Alice`}, {`age`, 25}}
*/
func StructAssigns(src any) []Assign {
	var out []Assign
	traverseStructDbFields(src, func(col string, val any) {
		out = append(out, Assign{col, val})
	})
	return out
}

/*
Converts a struct into an ordered list of column names, using the `db` tag of
each field. A zero struct value works; only the type matters.
*/
func StructCols(src any) []string {
	var out []string
	traverseStructDbFields(src, func(col string, _ any) {
		out = append(out, col)
	})
	return out
}

func traverseStructDbFields(input any, fun func(string, any)) {
	if input == nil {
		panic(ErrInvalidInput{Err{
			`traversing struct for DB fields`,
			ErrStr(`expected struct, got nil`),
		}})
	}

	rval := r.ValueOf(input)
	if refut.RtypeDeref(rval.Type()).Kind() != r.Struct {
		panic(ErrInvalidInput{Err{
			`traversing struct for DB fields`,
			errf(`expected struct, got %q`, rval.Type()),
		}})
	}
	if refut.IsRvalNil(rval) {
		return
	}

	try(refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		col := refut.TagIdent(sfield.Tag.Get(TagNameDb))
		if col == `` {
			return nil
		}
		fun(col, rval.Interface())
		return nil
	}))
}
