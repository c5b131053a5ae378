package sqlq

import "testing"

func Test_Query_Append(t *testing.T) {
	var query Query
	query.Append(`where true`)
	query.Append(`and one = $1`, 10)
	query.Append(`and two = $1`, 20)

	eq(t, `where true and one = $1 and two = $2`, query.String())
	eq(t, list{10, 20}, query.Args)
}

func Test_Query_Append_multi_param(t *testing.T) {
	var query Query
	query.Append(`one = $1 and two = $2`, 10, 20)
	query.Append(`and three = $1`, 30)

	eq(t, `one = $1 and two = $2 and three = $3`, query.String())
	eq(t, list{10, 20, 30}, query.Args)
}

func Test_Query_Append_repeated_param(t *testing.T) {
	var query Query
	query.Append(`one = $1 and two = $1`, 10)

	eq(t, `one = $1 and two = $1`, query.String())
	eq(t, list{10}, query.Args)
}

func Test_Query_Append_subquery(t *testing.T) {
	var inner Query
	inner.Append(`select id from inner_table where col = $1`, 10)

	var outer Query
	outer.Append(`select * from outer_table where id in ($1) and col = $2`, inner, 20)

	// Non-query arguments are collected before interpolation, so the plain
	// argument comes first and the subquery's ordinals are offset past it.
	eq(
		t,
		`select * from outer_table where id in (select id from inner_table where col = $2) and col = $1`,
		outer.String(),
	)
	eq(t, list{20, 10}, outer.Args)
}

func Test_Query_Append_ordinal_out_of_bounds(t *testing.T) {
	panics(t, `exceeds argument count 1`, func() {
		var query Query
		query.Append(`one = $2`, 10)
	})
	panics(t, `exceeds argument count 0`, func() {
		var query Query
		query.Append(`one = $1`)
	})
}

func Test_Query_Append_named_rejected(t *testing.T) {
	panics(t, `expected only ordinal params, got named param`, func() {
		var query Query
		query.Append(`one = :one`, 10)
	})
}

func Test_Query_Append_unused_argument(t *testing.T) {
	panics(t, `unused argument`, func() {
		var query Query
		query.Append(`one = $1`, 10, 20)
	})
}

func Test_Query_Append_check_unused_off(t *testing.T) {
	defer func() { CheckUnused = true }()
	CheckUnused = false

	var query Query
	query.Append(`one = $1`, 10, 20)
	eq(t, `one = $1`, query.String())
}

func Test_Query_AppendNamed(t *testing.T) {
	var query Query
	query.AppendNamed(
		`select col where col = :value`,
		map[string]any{`value`: 10},
	)

	eq(t, `select col where col = $1`, query.String())
	eq(t, list{10}, query.Args)
}

func Test_Query_AppendNamed_repeated(t *testing.T) {
	var query Query
	query.AppendNamed(
		`one = :value and two = :value and three = :other`,
		map[string]any{`value`: 10, `other`: 20},
	)

	eq(t, `one = $1 and two = $1 and three = $2`, query.String())
	eq(t, list{10, 20}, query.Args)
}

func Test_Query_AppendNamed_missing_argument(t *testing.T) {
	panics(t, `missing named argument`, func() {
		var query Query
		query.AppendNamed(`col = :value`, nil)
	})
}

func Test_Query_AppendNamed_ordinal_rejected(t *testing.T) {
	panics(t, `expected only named params, got ordinal param`, func() {
		var query Query
		query.AppendNamed(`col = $1`, map[string]any{`value`: 10})
	})
}

func Test_Query_AppendNamed_unused_argument(t *testing.T) {
	panics(t, `unused named argument "extra"`, func() {
		var query Query
		query.AppendNamed(`col = :value`, map[string]any{`value`: 10, `extra`: 20})
	})
}

func Test_Query_AppendQuery(t *testing.T) {
	var inner Query
	inner.Append(`where col = $1`, 10)

	var outer Query
	outer.Append(`select * from some_table`)
	outer.AppendQuery(inner)

	eq(t, `select * from some_table where col = $1`, outer.String())
	eq(t, list{10}, outer.Args)
}

func Test_Query_Clear(t *testing.T) {
	var query Query
	query.Append(`one = $1`, 10)
	query.Clear()

	eq(t, ``, query.String())
	eq(t, 0, len(query.Args))

	query.Append(`two = $1`, 20)
	eq(t, `two = $1`, query.String())
	eq(t, list{20}, query.Args)
}

func Test_Query_WrapSelect(t *testing.T) {
	var query Query
	query.Append(`select * from some_table`)
	query.WrapSelect(`one, two`)

	eq(t, `with _ as (select * from some_table) select one, two from _`, query.String())
}

func Test_Query_WrapSelectCols(t *testing.T) {
	var query Query
	query.Append(`select * from some_table`)
	query.WrapSelectCols(Person{})

	eq(t, `with _ as (select * from some_table) select name, age from _`, query.String())
}
