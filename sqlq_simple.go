package sqlq

import "strconv"

type simpleCond struct {
	col string
	op  string
	val any
	raw string
}

/*
Legacy statement builder with fixed statement shapes. Unlike `Stmt`, each
shape method renders immediately, returning a `Query`, and the output is not
canonicalized. Supports a substitute mode which emits ordinal parameters
instead of embedded literals, carrying the values in `Query.Args`.

Predates the destructive-statement guard; `Update` and `Delete` render
without a filter silently.

	simple := sqlq.Simple{Schema: `banks`, Table: `ras_forms`, Subst: true}
	simple.Cond(`obj`, `<=`, 44)
	query := simple.Insert(sqlq.Assign{`lic`, 600}, sqlq.Assign{`form`, `0409115`})

	query.String() // `INSERT INTO banks.ras_forms(lic, form) VALUES($1, $2) WHERE obj<=$3`
	query.Args     // []any{600, `0409115`, 44}
*/
type Simple struct {
	Schema string
	Table  string

	// Joiner between filter comparisons. Empty means `AND`.
	Joiner string

	// Emit ordinal parameters instead of embedded literals.
	Subst bool

	// Terminate rendered statements with `;`.
	Semi bool

	conds []simpleCond
}

// Appends a filter comparison: `col<op>value`, with no spaces around the
// operator. Comparisons are joined by `Joiner`.
func (self *Simple) Cond(col, op string, val any) *Simple {
	self.conds = append(self.conds, simpleCond{col: col, op: op, val: val})
	return self
}

// Appends a raw filter fragment, placed after all comparisons.
func (self *Simple) CondRaw(raw string) *Simple {
	self.conds = append(self.conds, simpleCond{raw: raw})
	return self
}

// Drops all accumulated filter fragments.
func (self *Simple) Clear() *Simple {
	self.conds = self.conds[:0]
	return self
}

// Renders a SELECT. Zero columns default to `*`.
func (self *Simple) Select(cols ...string) Query {
	text := append([]byte(`SELECT `), joinOrStar(cols)...)
	text = append(text, ` FROM `...)
	text = append(text, self.ident()...)
	return self.finish(text, nil)
}

/*
Renders an INSERT. Zero assigns produce an advisory warning and render
syntactically empty parens; the statement is the caller's responsibility.
*/
func (self *Simple) Insert(vals ...Assign) Query {
	if len(vals) == 0 {
		Warn(`no arguments passed; query won't be effective`)
	}

	text := append([]byte(`INSERT INTO `), self.ident()...)
	text = append(text, `(`...)
	var args []any
	for ind, val := range vals {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = append(text, val.Col...)
	}
	text = append(text, `) VALUES(`...)
	for ind, val := range vals {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text, args = self.appendVal(text, args, val.Val)
	}
	text = append(text, `)`...)
	return self.finish(text, args)
}

// Renders an UPDATE. Zero assigns produce an advisory warning.
func (self *Simple) Update(vals ...Assign) Query {
	if len(vals) == 0 {
		Warn(`no arguments passed; query won't be effective`)
	}

	text := append([]byte(`UPDATE `), self.ident()...)
	text = append(text, ` SET `...)
	var args []any
	for ind, val := range vals {
		if ind > 0 {
			text = append(text, `, `...)
		}
		text = append(text, val.Col...)
		text = append(text, `=`...)
		text, args = self.appendVal(text, args, val.Val)
	}
	return self.finish(text, args)
}

// Renders a DELETE. No filter guard; legacy semantics.
func (self *Simple) Delete() Query {
	text := append([]byte(`DELETE FROM `), self.ident()...)
	return self.finish(text, nil)
}

func (self *Simple) finish(text []byte, args []any) Query {
	text, args = self.whereInto(text, args)
	if self.Semi {
		text = append(text, statementSep)
	}

	var out Query
	out.Append(string(text), args...)
	return out
}

func (self *Simple) whereInto(text []byte, args []any) ([]byte, []any) {
	if len(self.conds) == 0 {
		return text, args
	}

	joiner := self.Joiner
	if joiner == `` {
		joiner = `AND`
	}

	text = appendMaybeSpaced(text, `WHERE`)

	var count int
	for _, cond := range self.conds {
		if cond.raw != `` {
			continue
		}
		if count > 0 {
			text = appendMaybeSpaced(text, joiner)
		}
		frag := append([]byte(cond.col), cond.op...)
		frag, args = self.appendVal(frag, args, cond.val)
		text = appendMaybeSpaced(text, string(frag))
		count++
	}

	for _, cond := range self.conds {
		if cond.raw != `` {
			text = appendMaybeSpaced(text, cond.raw)
		}
	}
	return text, args
}

// In substitute mode, emits the next ordinal parameter and carries the value
// as an argument. Otherwise embeds the literal text.
func (self *Simple) appendVal(text []byte, args []any, val any) ([]byte, []any) {
	if self.Subst {
		args = append(args, val)
		text = append(text, ordinalParamPrefix)
		text = strconv.AppendInt(text, int64(len(args)), 10)
		return text, args
	}
	return appendSimpleLit(text, val), args
}

// Legacy literal form: strings are quoted, nil is NULL, everything else
// degrades to its plain text form.
func appendSimpleLit(text []byte, val any) []byte {
	switch val := val.(type) {
	case nil:
		return appendNull(text)
	case string:
		return appendQuoted(text, val)
	default:
		return append(text, plain(val)...)
	}
}

func joinOrStar(cols []string) string {
	if len(cols) == 0 {
		return `*`
	}
	return string(appendJoined(nil, `, `, cols))
}

// Single column definition for `(*Simple).CreateTable`.
type ColDef struct {
	Name string
	Type string
}

// Options for `(*Simple).Truncate`.
type TruncateOpts struct {
	RestartIdentity bool
	Cascade         bool
}

/*
Renders a CREATE TABLE script with a tablespace and an ownership statement,
preceded by an identifying comment. Empty owner defaults to `developer`.
Statement separators are emitted only when `Semi` is set, matching the other
shapes.
*/
func (self *Simple) CreateTable(owner string, cols ...ColDef) string {
	if owner == `` {
		owner = `developer`
	}

	ident := self.ident()
	text := append([]byte(`-- Table: `), ident...)
	text = append(text, "\n\n"...)

	text = append(text, `CREATE TABLE IF NOT EXISTS `...)
	text = append(text, ident...)
	text = append(text, "\n(\n"...)
	for ind, col := range cols {
		if ind > 0 {
			text = append(text, ",\n"...)
		}
		text = append(text, col.Name...)
		text = append(text, ` `...)
		text = append(text, col.Type...)
	}
	text = append(text, "\n)\n"...)

	text = append(text, `TABLESPACE pg_default`...)
	text = self.maybeSemi(text)
	text = append(text, "\n"...)

	text = append(text, `ALTER TABLE IF EXISTS `...)
	text = append(text, ident...)
	text = append(text, "\n"...)
	text = append(text, `OWNER to `...)
	text = append(text, owner...)
	text = self.maybeSemi(text)

	return string(text)
}

/*
Renders a TRUNCATE statement. Zero tables default to the builder's own
qualified table.
*/
func (self *Simple) Truncate(opts TruncateOpts, tables ...string) string {
	text := []byte(`TRUNCATE `)
	if len(tables) > 0 {
		text = appendJoined(text, `, `, tables)
	} else {
		text = append(text, self.ident()...)
	}
	if opts.RestartIdentity {
		text = append(text, ` RESTART IDENTITY`...)
	}
	if opts.Cascade {
		text = append(text, ` CASCADE`...)
	}
	return string(self.maybeSemi(text))
}

func (self *Simple) maybeSemi(text []byte) []byte {
	if self.Semi {
		return append(text, statementSep)
	}
	return text
}

func (self *Simple) ident() string {
	if self.Schema == `` {
		return self.Table
	}
	return self.Schema + `.` + self.Table
}
