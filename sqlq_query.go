package sqlq

import (
	"strings"

	"github.com/mitranim/sqlp"
)

/*
If true (default), unused query parameters cause panics in functions like
`Query.Append`. If false, unused parameters are ok. Turning this off can be
convenient in development, when changing queries rapidly.
*/
var CheckUnused = true

/*
Interface that allows compatibility between different query variants. Subquery
insertion / flattening, supported by `Query.Append()` and `Query.AppendNamed()`,
detects instances of this interface, rather than the concrete type `Query`,
allowing external code to implement its own variants, wrap `Query`, etc.
*/
type IQuery interface{ QueryAppend(*Query) }

/*
Parametrized query builder, complementing the literal-embedding `Stmt`. Makes
it easy to append or insert arbitrary SQL code while avoiding common errors.
Contains both query text and arguments.

Automatically renumerates ordinal placeholders when appending code, making it
easy to avoid mis-numbering. See `.Append()`.

Supports named parameters. See `.AppendNamed()`.

Composable: both `.Append()` and `.AppendNamed()` automatically interpolate
sub-queries found in the arguments, combining the arguments and renumerating
the parameters as appropriate.

Biased towards Postgres-style ordinal parameters of the form `$N`. The code
is always converted to this "canonical" form.
*/
type Query struct {
	Text []byte
	Args []any
}

// Implement `fmt.Stringer`.
func (self Query) String() string { return string(self.Text) }

/*
Implement `IQuery`, allowing compatibility between different implementations,
wrappers, etc.
*/
func (self Query) QueryAppend(out *Query) {
	out.Append(string(self.Text), self.Args...)
}

/*
Appends code and arguments. Renumerates ordinal parameters, offsetting them by
the previous argument count. The count in the code always starts from `$1`.

Composable: automatically interpolates any instances of `IQuery` found in the
arguments, combining the arguments and renumerating the parameters as
appropriate.

For example, this:

	var query Query
	query.Append(`where true`)
	query.Append(`and one = $1`, 10)
	query.Append(`and two = $1`, 20) // Note the $1.

	text := query.String()
	args := query.Args

Is equivalent to this:

	text := `where true and one = $1 and two = $2`
	args := []any{10, 20}

Panics when: the code is malformed; the code has named parameters; a parameter
doesn't have a corresponding argument; an argument doesn't have a
corresponding parameter.
*/
func (self *Query) Append(src string, args ...any) {
	tokenizer := sqlp.Tokenizer{Source: src}
	startOffset := len(self.Args)
	appendNonQueries(&self.Args, args)

	used := make([]bool, len(args))
	self.Text = maybeAppendSpace(self.Text)

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			index := node.Index()
			if index < 0 || index >= len(args) {
				panic(ErrOrdinalOutOfBounds{Err{
					`appending to query`,
					errf(`ordinal parameter %v exceeds argument count %v`, node, len(args)),
				}})
			}

			used[index] = true
			query, ok := args[index].(IQuery)
			if ok {
				query.QueryAppend(self)
			} else {
				ord := sqlp.NodeOrdinalParam(int(node) + startOffset - queryArgsBefore(args, node.Index()))
				ord.Append(&self.Text)
			}

		case sqlp.NodeNamedParam:
			panic(ErrUnexpectedParameter{Err{
				`appending to query`,
				errf(`expected only ordinal params, got named param %q`, node),
			}})

		default:
			node.Append(&self.Text)
		}
	}

	if CheckUnused {
		for ind, arg := range args {
			if !used[ind] {
				panic(ErrUnusedArgument{Err{
					`appending to query`,
					errf(`unused argument %#v at index %v`, arg, ind),
				}})
			}
		}
	}
}

/*
Appends code and named arguments. The code must have named parameters in the
form ":identifier". The keys in the arguments map must have the form
"identifier", without a leading ":".

Internally, converts named parameters to ordinal parameters of the form `$N`,
such as the ones used by `.Append()`.

Composable: automatically interpolates any instances of `IQuery` found in the
arguments, combining the arguments and renumerating the parameters as
appropriate.

For example, this:

	var query Query
	query.AppendNamed(
		`select col where col = :value`,
		map[string]any{"value": 10},
	)

	text := query.String()
	args := query.Args

Is equivalent to this:

	text := `select col where col = $1`
	args := []any{10}

Panics when: the code is malformed; the code has ordinal parameters; a
parameter doesn't have a corresponding argument; an argument doesn't have a
corresponding parameter.
*/
func (self *Query) AppendNamed(src string, args map[string]any) {
	tokenizer := sqlp.Tokenizer{Source: src}
	namedToOrd := make(map[sqlp.NodeNamedParam]sqlp.NodeOrdinalParam, len(args))
	self.Text = maybeAppendSpace(self.Text)

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			panic(ErrUnexpectedParameter{Err{
				`appending to query`,
				errf(`expected only named params, got ordinal param %q`, node),
			}})

		case sqlp.NodeNamedParam:
			arg, found := args[string(node)]
			if !found {
				panic(ErrMissingArgument{Err{
					`appending to query`,
					errf(`missing named argument %q`, node),
				}})
			}

			query, ok := arg.(IQuery)
			if ok {
				// Value doesn't matter. This allows detection of unused arguments.
				namedToOrd[node] = 0
				query.QueryAppend(self)
				continue
			}

			ord, ok := namedToOrd[node]
			if !ok {
				self.Args = append(self.Args, arg)
				ord = sqlp.NodeOrdinalParam(len(self.Args))
				namedToOrd[node] = ord
			}
			ord.Append(&self.Text)

		default:
			node.Append(&self.Text)
		}
	}

	if CheckUnused {
		for key := range args {
			_, ok := namedToOrd[sqlp.NodeNamedParam(key)]
			if !ok {
				panic(ErrUnusedArgument{Err{
					`appending to query`,
					errf(`unused named argument %q`, key),
				}})
			}
		}
	}
}

/*
Convenience method, inverse of `IQuery.QueryAppend`. Appends the other query
to this one, combining the arguments and renumerating the ordinal parameters
as appropriate.
*/
func (self *Query) AppendQuery(query IQuery) {
	if query != nil {
		query.QueryAppend(self)
	}
}

/*
"Zeroes" the query, keeping any already-allocated capacity. Similar to
`query = sqlq.Query{}`, but slightly clearer and marginally more efficient
for subsequent query building.
*/
func (self *Query) Clear() {
	self.Text = self.Text[:0]
	self.Args = self.Args[:0]
}

/*
Wraps the query to select only the specified expressions.

For example, this:

	var query Query
	query.Append(`select * from some_table`)
	query.WrapSelect(`one, two`)

	text := query.String()

Is equivalent to this:

	text := `with _ as (select * from some_table) select one, two from _`
*/
func (self *Query) WrapSelect(exprs string) {
	const (
		s0 = `with _ as (`
		s1 = `) select `
		s2 = ` from _`
	)

	buf := make([]byte, 0, len(s0)+len(self.Text)+len(s1)+len(exprs)+len(s2))
	buf = append(buf, s0...)
	buf = append(buf, self.Text...)
	buf = append(buf, s1...)
	buf = append(buf, exprs...)
	buf = append(buf, s2...)

	self.Text = buf
}

/*
Wraps the query to select the columns derived from the `db`-tagged fields of
the given struct. See `WrapSelect` and `StructCols`.
*/
func (self *Query) WrapSelectCols(dest any) {
	self.WrapSelect(strings.Join(StructCols(dest), `, `))
}

func appendNonQueries(out *[]any, src []any) {
	for _, val := range src {
		if !isIQuery(val) {
			*out = append(*out, val)
		}
	}
}

// Amount of `IQuery` arguments before the given index. Their values are
// interpolated rather than appended, which offsets later ordinals.
func queryArgsBefore(args []any, until int) int {
	var count int
	for ind, arg := range args {
		if ind >= until {
			break
		}
		if isIQuery(arg) {
			count++
		}
	}
	return count
}

func isIQuery(val any) bool {
	_, ok := val.(IQuery)
	return ok
}
