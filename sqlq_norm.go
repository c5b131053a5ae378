package sqlq

import "strings"

const (
	VerbUnknown Verb = iota
	VerbSelect
	VerbInsert
	VerbUpdate
	VerbDelete
)

// Leading statement verb detected by `Classify`.
type Verb byte

// Implement `fmt.Stringer`.
func (self Verb) String() string {
	switch self {
	case VerbSelect:
		return `SELECT`
	case VerbInsert:
		return `INSERT`
	case VerbUpdate:
		return `UPDATE`
	case VerbDelete:
		return `DELETE`
	default:
		return ``
	}
}

// Shallow structural summary of raw SQL text, produced by `Classify`.
type StmtInfo struct {
	// Amount of non-empty statements. Whitespace and comments don't count.
	Count int
	// Verb of the first statement, or `VerbUnknown`.
	Verb Verb
	// False when parens are unbalanced, a separator occurs inside parens, or
	// tokenization fails outright.
	WellFormed bool
}

/*
Shallowly inspects raw SQL text: counts statements, detects the leading verb,
checks structural sanity. Never panics; unparsable input comes back as
not-well-formed. Backs the validating constructor `FromRaw`.
*/
func Classify(src string) (out StmtInfo) {
	out.WellFormed = true
	defer func() {
		if recover() != nil {
			out = StmtInfo{Count: out.Count, Verb: out.Verb}
		}
	}()

	var depth int
	var nonEmpty bool
	tok := Tokenizer{Source: src}

	for {
		token := tok.Next()
		if token.IsInvalid() {
			break
		}

		switch token.Type {
		case TokenTypeWhitespace, TokenTypeCommentLine, TokenTypeCommentBlock:
			continue

		case TokenTypeSemi:
			if depth != 0 {
				out.WellFormed = false
			}
			if nonEmpty {
				out.Count++
				nonEmpty = false
			}

		case TokenTypeWord:
			nonEmpty = true
			if depth == 0 && out.Count == 0 && out.Verb == VerbUnknown {
				out.Verb = wordVerb(token.Text)
			}

		case TokenTypeText:
			nonEmpty = true
			for ind := 0; ind < len(token.Text); ind++ {
				switch token.Text[ind] {
				case '(':
					depth++
				case ')':
					depth--
					if depth < 0 {
						out.WellFormed = false
						depth = 0
					}
				}
			}

		default:
			nonEmpty = true
		}
	}

	if nonEmpty {
		out.Count++
	}
	if depth != 0 {
		out.WellFormed = false
	}
	return
}

func wordVerb(word string) Verb {
	switch strings.ToLower(word) {
	case `select`:
		return VerbSelect
	case `insert`:
		return VerbInsert
	case `update`:
		return VerbUpdate
	case `delete`:
		return VerbDelete
	default:
		return VerbUnknown
	}
}

// Options for `FormatOpts.Format`. The zero value is the default mode used by
// the shortcut `Format`.
type FormatOpts struct {
	// Suppress clause line breaks, collapsing the statement to one line.
	Inline bool
	// Keep keyword case as-is instead of uppercasing.
	KeepCase bool
}

/*
Canonicalizes raw SQL text with default options: keywords uppercased, interior
whitespace collapsed to single spaces, quoted `'null'` collapsed to the `NULL`
keyword, top-level clauses broken onto separate lines, edges trimmed. Quoted
strings, quoted identifiers and comments pass through untouched. Panics on
text that can't be tokenized, such as an unterminated quote.
*/
func Format(src string) string { return FormatOpts{}.Format(src) }

// Canonicalizes raw SQL text. See `Format`.
func (self FormatOpts) Format(src string) string {
	var text []byte
	var pending bool
	var depth int
	var prevWord string

	flush := func(brk bool) {
		if !pending {
			return
		}
		pending = false
		if len(text) == 0 {
			return
		}
		if brk && !self.Inline && depth == 0 {
			text = append(text, '\n')
			return
		}
		text = append(text, ' ')
	}

	tok := Tokenizer{Source: src}
	for {
		token := tok.Next()
		if token.IsInvalid() {
			break
		}

		switch token.Type {
		case TokenTypeWhitespace:
			pending = true

		case TokenTypeWord:
			word := strings.ToLower(token.Text)
			flush(clauseStarters[word] && !(word == `join` && joinKinds[prevWord]))
			if !self.KeepCase && sqlKeywords[word] {
				text = append(text, strings.ToUpper(word)...)
			} else {
				text = append(text, token.Text...)
			}
			prevWord = word

		case TokenTypeQuotedSingle:
			flush(false)
			if strings.EqualFold(strings.Trim(token.Text, `'`), `null`) {
				text = append(text, `NULL`...)
			} else {
				text = append(text, token.Text...)
			}
			prevWord = ``

		case TokenTypeSemi:
			// Separator binds to the preceding statement regardless of
			// whitespace before it.
			pending = false
			text = append(text, statementSep)
			pending = true
			prevWord = ``

		case TokenTypeText:
			flush(false)
			for ind := 0; ind < len(token.Text); ind++ {
				switch token.Text[ind] {
				case '(':
					depth++
				case ')':
					depth--
				}
			}
			text = append(text, token.Text...)
			prevWord = ``

		default:
			flush(false)
			text = append(text, token.Text...)
			prevWord = ``
		}
	}

	return strings.TrimSpace(string(text))
}

/*
Keywords recased by `Format`. Boolean literals are deliberately absent: `true`
and `false` stay as written.
*/
var sqlKeywords = wordSet(`
	select from where and or not in is null as on join inner left right full
	outer cross insert into values update set delete group by order having
	limit returning with distinct asc desc like between exists union all case
	when then else end
`)

// Words that open a new clause line at paren depth zero.
var clauseStarters = wordSet(`
	where group order having limit returning join inner left right full cross
	select insert update delete
`)

// When the previous word is one of these, a following `join` continues the
// same clause instead of opening a new line.
var joinKinds = wordSet(`inner left right full cross outer`)

func wordSet(src string) map[string]bool {
	out := map[string]bool{}
	for _, word := range strings.Fields(src) {
		out[word] = true
	}
	return out
}
