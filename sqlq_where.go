package sqlq

import "fmt"

type whereFrag struct {
	joiner string
	pred   string
}

/*
Accumulates filter predicates in call order, rendering them as a single
`WHERE` clause. Predicates are raw SQL text; values passed to the condition
shortcuts are coerced through their plain text form without quoting.

Usually embedded in `Stmt` and reached through its filter methods, but usable
on its own:

	var cond sqlq.Where
	cond.Where(`age > 18`).AndWhere(`gender = 'female'`)
	cond.String() // `WHERE age > 18 AND gender = 'female'`
*/
type Where struct{ frags []whereFrag }

// Appends a predicate with no explicit joiner. The first fragment's joiner is
// always elided when rendering; later joinerless fragments are joined by a
// single space, allowing raw multi-part predicates.
func (self *Where) Where(pred string) *Where {
	self.frags = append(self.frags, whereFrag{``, pred})
	return self
}

// Appends a predicate joined by `AND`.
func (self *Where) AndWhere(pred string) *Where {
	self.frags = append(self.frags, whereFrag{`AND`, pred})
	return self
}

// Appends a predicate joined by `OR`.
func (self *Where) OrWhere(pred string) *Where {
	self.frags = append(self.frags, whereFrag{`OR`, pred})
	return self
}

/*
Appends a membership predicate: `col IN (val0,val1)`. Values are coerced
through their plain text form; strings are not quoted. Joined like `Where`,
with no explicit joiner.
*/
func (self *Where) InWhere(col string, vals ...any) *Where {
	text := append([]byte(col), ` IN (`...)
	for ind, val := range vals {
		if ind > 0 {
			text = append(text, `,`...)
		}
		text = append(text, plain(val)...)
	}
	text = append(text, `)`...)
	return self.Where(string(text))
}

// Appends an identity predicate: `col IS <value>`. Nil renders as `NULL`.
func (self *Where) IsWhere(col string, val any) *Where {
	return self.Where(fmt.Sprintf(`%v IS %v`, col, plain(val)))
}

// Drops all accumulated predicates.
func (self *Where) Clear() *Where {
	self.frags = self.frags[:0]
	return self
}

func (self Where) IsEmpty() bool { return len(self.frags) == 0 }

// Appends the rendered `WHERE` clause, or nothing when empty.
func (self Where) Append(text []byte) []byte {
	if self.IsEmpty() {
		return text
	}

	text = appendMaybeSpaced(text, `WHERE`)
	for ind, frag := range self.frags {
		if ind > 0 && frag.joiner != `` {
			text = appendMaybeSpaced(text, frag.joiner)
		}
		text = appendMaybeSpaced(text, frag.pred)
	}
	return text
}

// Implement `fmt.Stringer`.
func (self Where) String() string { return string(self.Append(nil)) }
