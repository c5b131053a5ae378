package sqlq

import "testing"

func Test_Format_recase(t *testing.T) {
	eq(t, `SELECT * FROM my_table`, Format(`select * from my_table`))
	eq(t, `SELECT one, two FROM my_table`, Format(`SeLeCt one, two fRoM my_table`))
}

func Test_Format_preserves_identifier_case(t *testing.T) {
	eq(
		t,
		`SELECT Name FROM My_Table`,
		Format(`select Name from My_Table`),
	)
}

func Test_Format_whitespace(t *testing.T) {
	eq(t, `SELECT * FROM t`, Format("  select \t *   from\nt  "))
}

func Test_Format_clause_breaks(t *testing.T) {
	eq(
		t,
		"SELECT * FROM t\nWHERE x = 1\nORDER BY x DESC",
		Format(`select * from t where x   =  1 order by x desc`),
	)
	eq(
		t,
		"SELECT count(*) FROM t\nGROUP BY x\nHAVING count(*) > 1\nLIMIT 10",
		Format(`select count(*) from t group by x having count(*) > 1 limit 10`),
	)
}

func Test_Format_joins(t *testing.T) {
	eq(
		t,
		"SELECT * FROM a\nINNER JOIN b ON a.x = b.x\nLEFT JOIN c ON c.y = a.y",
		Format(`select * from a inner join b on a.x = b.x left join c on c.y = a.y`),
	)

	// A bare join breaks too.
	eq(
		t,
		"SELECT * FROM a\nJOIN b ON a.x = b.x",
		Format(`select * from a join b on a.x = b.x`),
	)
}

func Test_Format_no_breaks_in_parens(t *testing.T) {
	eq(
		t,
		`WHERE x IN (SELECT id FROM t WHERE y)`,
		Format(`where x in (select id from t where y)`),
	)
}

func Test_Format_null_collapse(t *testing.T) {
	eq(t, `SET x = NULL`, Format(`set x = 'null'`))
	eq(t, `SET x = NULL`, Format(`set x = 'NULL'`))
	eq(t, `SET x = 'nullable'`, Format(`set x = 'nullable'`))
}

func Test_Format_quoted_untouched(t *testing.T) {
	eq(
		t,
		`SELECT 'from where' AS "From Where"`,
		Format(`select 'from where' as "From Where"`),
	)
}

func Test_Format_bool_case_kept(t *testing.T) {
	eq(t, `WHERE true OR false`, Format(`where true or false`))
}

func Test_Format_semi(t *testing.T) {
	eq(t, "SELECT 1;\nSELECT 2", Format(`select 1; select 2`))
	eq(t, `SELECT 1;`, Format(`select 1 ;`))
}

func Test_Format_inline(t *testing.T) {
	eq(
		t,
		`SELECT * FROM t WHERE x = 1 ORDER BY x`,
		FormatOpts{Inline: true}.Format(`select * from t where x = 1 order by x`),
	)
}

func Test_Format_keep_case(t *testing.T) {
	eq(
		t,
		"select * from t\nwhere x = 1",
		FormatOpts{KeepCase: true}.Format(`select * from t where x = 1`),
	)
}

func Test_Format_invalid(t *testing.T) {
	panics(t, `unexpected EOF`, func() { Format(`select 'unterminated`) })
	panics(t, `unexpected EOF`, func() { Format(`select /* unterminated`) })
}

func Test_Classify_counts(t *testing.T) {
	eq(t, StmtInfo{Count: 0, Verb: VerbUnknown, WellFormed: true}, Classify(``))
	eq(t, StmtInfo{Count: 0, Verb: VerbUnknown, WellFormed: true}, Classify("  \n\t "))
	eq(t, StmtInfo{Count: 0, Verb: VerbUnknown, WellFormed: true}, Classify(`-- just a comment`))
	eq(t, StmtInfo{Count: 1, Verb: VerbSelect, WellFormed: true}, Classify(`select * from t`))
	eq(t, StmtInfo{Count: 1, Verb: VerbSelect, WellFormed: true}, Classify(`select 1;`))
	eq(t, StmtInfo{Count: 2, Verb: VerbSelect, WellFormed: true}, Classify(`select 1; delete from t`))
}

func Test_Classify_verbs(t *testing.T) {
	eq(t, VerbInsert, Classify(`insert into t (x) values (1)`).Verb)
	eq(t, VerbUpdate, Classify(`UPDATE t SET x = 1`).Verb)
	eq(t, VerbDelete, Classify(`delete from t where x`).Verb)
	eq(t, VerbUnknown, Classify(`create table t (x int)`).Verb)

	// The verb may come after a leading CTE.
	eq(t, VerbDelete, Classify(`with a as (select 1) delete from t where x`).Verb)
}

func Test_Classify_malformed(t *testing.T) {
	eq(t, false, Classify(`select (1`).WellFormed)
	eq(t, false, Classify(`select 1)`).WellFormed)
	eq(t, false, Classify(`select (1;) from t`).WellFormed)
	eq(t, false, Classify(`select 'unterminated`).WellFormed)
}

func Test_Verb_String(t *testing.T) {
	eq(t, ``, VerbUnknown.String())
	eq(t, `SELECT`, VerbSelect.String())
	eq(t, `DELETE`, VerbDelete.String())
}

func Test_Tokenizer_params(t *testing.T) {
	tok := Tokenizer{Source: `where x = $1 and y = :name::text`}

	var types []TokenType
	var texts []string
	for {
		token := tok.Next()
		if token.IsInvalid() {
			break
		}
		types = append(types, token.Type)
		texts = append(texts, token.Text)
	}

	eq(
		t,
		[]TokenType{
			TokenTypeWord, TokenTypeWhitespace, TokenTypeWord, TokenTypeWhitespace,
			TokenTypeText, TokenTypeWhitespace, TokenTypeOrdinalParam,
			TokenTypeWhitespace, TokenTypeWord, TokenTypeWhitespace, TokenTypeWord,
			TokenTypeWhitespace, TokenTypeText, TokenTypeWhitespace,
			TokenTypeNamedParam, TokenTypeDoubleColon, TokenTypeWord,
		},
		types,
	)
	eq(
		t,
		[]string{
			`where`, ` `, `x`, ` `, `=`, ` `, `$1`, ` `, `and`, ` `, `y`,
			` `, `=`, ` `, `:name`, `::`, `text`,
		},
		texts,
	)
}
