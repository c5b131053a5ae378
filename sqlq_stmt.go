package sqlq

import (
	"fmt"
	"strconv"
	"strings"
)

// Single column-value pair. Ordered sequences of these replace unordered
// maps for insert and update inputs, preserving call-site column order.
type Assign struct {
	Col string
	Val any
}

/*
Single CTE binding for `(*Stmt).With`. `Sub` may be a string, a
`fmt.Stringer` such as another `*Stmt`, or anything convertible to text.
*/
type CTE struct {
	Name string
	Sub  any
}

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
)

// Join flavor used by `(*Stmt).Join` and friends.
type JoinKind byte

// Implement `fmt.Stringer`.
func (self JoinKind) String() string {
	switch self {
	case JoinLeft:
		return `LEFT`
	case JoinRight:
		return `RIGHT`
	case JoinFull:
		return `FULL`
	default:
		return `INNER`
	}
}

const (
	DirNone Dir = iota
	DirAsc
	DirDesc
)

// Ordering direction for `(*Stmt).OrderBy`.
type Dir byte

// Implement `fmt.Stringer`.
func (self Dir) String() string {
	switch self {
	case DirAsc:
		return `ASC`
	case DirDesc:
		return `DESC`
	default:
		return ``
	}
}

type stmtCte struct{ name, body string }

type stmtJoin struct {
	kind  JoinKind
	table string
	cond  string
}

/*
Fluent SQL statement builder. Accumulates clause fragments in any call order
and renders them in canonical clause order, passing the result through
`Format`. A zero or freshly constructed builder renders as a wildcard select
over its table.

Rendering an UPDATE or DELETE with an empty filter fails with
`ErrMissingFilter` unless `Lax` is set, in which case it warns through `Warn`
and proceeds.

Not safe for concurrent use.
*/
type Stmt struct {
	Schema string
	Table  string

	// Downgrade the missing-filter failure on destructive statements to an
	// advisory warning.
	Lax bool

	body       string
	cond       Where
	ctes       []stmtCte
	joins      []stmtJoin
	selCols    []string
	insCols    []string
	insRows    [][]string
	setCols    []string
	setVals    []string
	groupCols  []string
	orderCols  []string
	orderDir   Dir
	havingPred string
	returnCols string
	limit      int
	danger     bool
}

func NewStmt(schema, table string) *Stmt {
	return &Stmt{Schema: schema, Table: table}
}

/*
Accumulates select columns and makes the statement body a SELECT. Zero
accumulated columns render as `*`.
*/
func (self *Stmt) Select(cols ...string) *Stmt {
	self.selCols = append(self.selCols, cols...)
	self.body = self.selectClause()
	return self
}

// Select columns derived from the `db`-tagged fields of the given struct.
func (self *Stmt) SelectStruct(src any) *Stmt {
	return self.Select(StructCols(src)...)
}

/*
Appends an insert value row and makes the statement body an INSERT. The
first call establishes the column set; later calls must match it exactly, in
width and in column order, or this panics with `ErrStructuralMismatch`.
Values are coerced through `Literal` without forced quoting. Zero assigns
produce an advisory warning and change nothing.
*/
func (self *Stmt) Insert(vals ...Assign) *Stmt {
	if len(vals) == 0 {
		Warn(`insert with zero columns; statement body unchanged`)
		return self
	}

	cols := make([]string, 0, len(vals))
	row := make([]string, 0, len(vals))
	for _, val := range vals {
		cols = append(cols, val.Col)
		row = append(row, Literal(val.Val, false))
	}

	if len(self.insRows) == 0 {
		self.insCols = cols
	} else {
		self.validateInsertCols(cols)
	}

	self.insRows = append(self.insRows, row)
	self.body = self.insertClause()
	return self
}

// Insert a row derived from the `db`-tagged fields of the given struct.
func (self *Stmt) InsertStruct(src any) *Stmt {
	return self.Insert(StructAssigns(src)...)
}

func (self *Stmt) validateInsertCols(cols []string) {
	if len(cols) != len(self.insCols) {
		panic(ErrStructuralMismatch{Err{
			`appending insert row`,
			errf(
				`row has %v columns, statement already has %v`,
				len(cols), len(self.insCols),
			),
		}})
	}
	for ind, col := range cols {
		if col != self.insCols[ind] {
			panic(ErrStructuralMismatch{Err{
				`appending insert row`,
				errf(
					`column %v is %q, statement already has %q`,
					ind, col, self.insCols[ind],
				),
			}})
		}
	}
}

/*
Replaces the update assignments wholesale and makes the statement body an
UPDATE, flagging it destructive. Values are coerced through `Literal` with
forced quoting, preserving legacy textual-update behavior. Zero assigns
produce an advisory warning and change nothing.
*/
func (self *Stmt) Set(vals ...Assign) *Stmt {
	if len(vals) == 0 {
		Warn(`update with zero columns; statement body unchanged`)
		return self
	}

	self.setCols = self.setCols[:0]
	self.setVals = self.setVals[:0]
	for _, val := range vals {
		self.setCols = append(self.setCols, val.Col)
		self.setVals = append(self.setVals, Literal(val.Val, true))
	}

	self.danger = true
	self.body = self.updateClause()
	return self
}

// Alias for `Set`.
func (self *Stmt) Update(vals ...Assign) *Stmt { return self.Set(vals...) }

// Update assignments derived from the `db`-tagged fields of the given
// struct.
func (self *Stmt) SetStruct(src any) *Stmt {
	return self.Set(StructAssigns(src)...)
}

// Makes the statement body a DELETE, flagging it destructive.
func (self *Stmt) Delete() *Stmt {
	self.danger = true
	self.body = `DELETE FROM ` + self.qualified()
	return self
}

func (self *Stmt) Join(table, cond string) *Stmt {
	return self.join(JoinInner, table, cond)
}

func (self *Stmt) LeftJoin(table, cond string) *Stmt {
	return self.join(JoinLeft, table, cond)
}

func (self *Stmt) RightJoin(table, cond string) *Stmt {
	return self.join(JoinRight, table, cond)
}

func (self *Stmt) FullJoin(table, cond string) *Stmt {
	return self.join(JoinFull, table, cond)
}

func (self *Stmt) join(kind JoinKind, table, cond string) *Stmt {
	self.joins = append(self.joins, stmtJoin{kind, table, cond})
	return self
}

/*
Appends a CTE binding. The subquery is converted to text at bind time; later
mutations of a bound `*Stmt` subquery don't affect this statement.
*/
func (self *Stmt) WithAs(name string, sub any) *Stmt {
	self.ctes = append(self.ctes, stmtCte{name, subText(sub)})
	return self
}

// Appends CTE bindings in bulk. See `WithAs`.
func (self *Stmt) With(vals ...CTE) *Stmt {
	for _, val := range vals {
		self.WithAs(val.Name, val.Sub)
	}
	return self
}

// Accumulates grouping columns.
func (self *Stmt) GroupBy(cols ...string) *Stmt {
	self.groupCols = append(self.groupCols, cols...)
	return self
}

// Accumulates ordering columns. The direction applies to the entire clause;
// the latest call wins.
func (self *Stmt) OrderBy(dir Dir, cols ...string) *Stmt {
	self.orderCols = append(self.orderCols, cols...)
	self.orderDir = dir
	return self
}

// Sets the HAVING predicate. The latest call wins.
func (self *Stmt) Having(pred string) *Stmt {
	self.havingPred = pred
	return self
}

// Sets the LIMIT. Zero means no limit clause.
func (self *Stmt) Limit(val int) *Stmt {
	self.limit = val
	return self
}

// Sets the RETURNING columns. The latest call wins.
func (self *Stmt) Returning(cols ...string) *Stmt {
	self.returnCols = strings.Join(cols, `, `)
	return self
}

// Appends a filter predicate. See `Where.Where`.
func (self *Stmt) Where(pred string) *Stmt {
	self.cond.Where(pred)
	return self
}

// Appends a filter predicate joined by `AND`. See `Where.AndWhere`.
func (self *Stmt) AndWhere(pred string) *Stmt {
	self.cond.AndWhere(pred)
	return self
}

// Appends a filter predicate joined by `OR`. See `Where.OrWhere`.
func (self *Stmt) OrWhere(pred string) *Stmt {
	self.cond.OrWhere(pred)
	return self
}

// Appends a membership filter predicate. See `Where.InWhere`.
func (self *Stmt) InWhere(col string, vals ...any) *Stmt {
	self.cond.InWhere(col, vals...)
	return self
}

// Appends an identity filter predicate. See `Where.IsWhere`.
func (self *Stmt) IsWhere(col string, val any) *Stmt {
	self.cond.IsWhere(col, val)
	return self
}

/*
Resets all accumulated state, including `Lax`, preserving only `Schema` and
`Table`. The builder becomes equivalent to a freshly constructed one.
*/
func (self *Stmt) Clear() *Stmt {
	*self = Stmt{Schema: self.Schema, Table: self.Table}
	return self
}

/*
Renders the statement in canonical clause order, passing it through `Format`.
Panics with `ErrMissingFilter` on a destructive statement with an empty
filter, unless `Lax` is set. Use `Render` for the non-panicking variant.
*/
func (self *Stmt) String() string {
	if self.danger && self.cond.IsEmpty() {
		if !self.Lax {
			panic(ErrMissingFilter{Err{
				`rendering statement`,
				ErrStr(`destructive statement with no filter; add a filter or set Lax`),
			}})
		}
		Warn(`rendering unfiltered destructive statement`)
	}
	return Format(string(self.compose()))
}

// Like `String`, but converts the missing-filter panic into an error.
func (self *Stmt) Render() (_ string, err error) {
	defer rec(&err)
	return self.String(), nil
}

func (self *Stmt) compose() []byte {
	var text []byte

	if len(self.ctes) > 0 {
		text = append(text, `WITH `...)
		for ind, cte := range self.ctes {
			if ind > 0 {
				text = append(text, `, `...)
			}
			text = append(text, cte.name...)
			text = append(text, ` AS (`...)
			text = append(text, cte.body...)
			text = append(text, `)`...)
		}
	}

	body := self.body
	if body == `` {
		body = self.selectClause()
	}
	text = appendMaybeSpaced(text, body)

	for _, join := range self.joins {
		text = appendMaybeSpaced(text, join.kind.String())
		text = appendMaybeSpaced(text, `JOIN`)
		text = appendMaybeSpaced(text, self.qualify(join.table))
		text = appendMaybeSpaced(text, `ON`)
		text = appendMaybeSpaced(text, join.cond)
	}

	text = self.cond.Append(text)

	if len(self.groupCols) > 0 {
		text = appendMaybeSpaced(text, `GROUP BY`)
		text = appendMaybeSpaced(text, strings.Join(self.groupCols, `, `))
	}

	if len(self.orderCols) > 0 {
		text = appendMaybeSpaced(text, `ORDER BY`)
		text = appendMaybeSpaced(text, strings.Join(self.orderCols, `, `))
		if self.orderDir != DirNone {
			text = appendMaybeSpaced(text, self.orderDir.String())
		}
	}

	if self.havingPred != `` {
		text = appendMaybeSpaced(text, `HAVING`)
		text = appendMaybeSpaced(text, self.havingPred)
	}

	if self.limit != 0 {
		text = appendMaybeSpaced(text, `LIMIT`)
		text = appendMaybeSpaced(text, strconv.Itoa(self.limit))
	}

	if self.returnCols != `` {
		text = appendMaybeSpaced(text, `RETURNING`)
		text = appendMaybeSpaced(text, self.returnCols)
	}

	return text
}

func (self *Stmt) selectClause() string {
	cols := `*`
	if len(self.selCols) > 0 {
		cols = strings.Join(self.selCols, `, `)
	}
	return `SELECT ` + cols + ` FROM ` + self.qualified()
}

func (self *Stmt) insertClause() string {
	text := append([]byte(`INSERT INTO `), self.qualified()...)
	text = append(text, ` (`...)
	text = appendJoined(text, `, `, self.insCols)
	text = append(text, `) VALUES `...)
	for ind, row := range self.insRows {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = append(text, `(`...)
		text = appendJoined(text, `, `, row)
		text = append(text, `)`...)
	}
	return string(text)
}

func (self *Stmt) updateClause() string {
	text := append([]byte(`UPDATE `), self.qualified()...)
	text = append(text, ` SET `...)
	for ind := range self.setCols {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = append(text, self.setCols[ind]...)
		text = append(text, `=`...)
		text = append(text, self.setVals[ind]...)
	}
	return string(text)
}

func (self *Stmt) qualified() string { return self.qualify(self.Table) }

func (self *Stmt) qualify(table string) string {
	if self.Schema == `` {
		return table
	}
	return self.Schema + `.` + table
}

/*
Validating constructor. Accepts raw SQL text, requiring exactly one
well-formed statement of a supported verb: SELECT, INSERT, UPDATE or DELETE.
On success the canonicalized text becomes the statement body. All failures
come back as `ErrQuery`.
*/
func FromRaw(src string) (*Stmt, error) {
	info := Classify(src)

	fail := func(msg string) (*Stmt, error) {
		return nil, ErrQuery{Err{`validating raw query`, ErrStr(msg)}}
	}

	if info.Count == 0 {
		return fail(`empty query`)
	}
	if info.Count > 1 {
		return fail(`multiple statements are not supported`)
	}
	if !info.WellFormed {
		return fail(`malformed statement`)
	}
	if info.Verb == VerbUnknown {
		return fail(`unsupported statement type`)
	}

	return &Stmt{body: Format(src)}, nil
}

func subText(val any) string {
	switch val := val.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
