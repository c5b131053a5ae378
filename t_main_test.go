package sqlq

import (
	"fmt"
	r "reflect"
	"runtime"
	"strings"
	"testing"
)

type (
	B  = testing.B
	T  = testing.T
	TB = testing.TB
)

type Person struct {
	Name string `json:"name" db:"name"`
	Age  int    `json:"age"  db:"age"`
}

type Embed struct {
	EmbedId   string `db:"embed_id"`
	EmbedName string `db:"embed_name"`
	Untagged  string ``
}

type Outer struct {
	Embed
	OuterId  string `db:"outer_id"`
	OnlyJson string `json:"onlyJson"`
}

var testOuter = Outer{
	Embed:   Embed{EmbedId: `embed id`, EmbedName: `embed name`, Untagged: `untagged`},
	OuterId: `outer id`,
}

type list = []any

func eq(t TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func panics(t TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(
			`expected %v to panic with a message containing %q, found %q`,
			funcName(fun), msg, str,
		)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(r.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }

// Swaps out the `Warn` hook for the duration of the call, collecting the
// messages.
func captureWarns(fun func()) []string {
	prev := Warn
	defer func() { Warn = prev }()

	var out []string
	Warn = func(msg string) { out = append(out, msg) }
	fun()
	return out
}

func renders(t TB, exp string, val *Stmt) {
	t.Helper()
	eq(t, exp, val.String())

	out, err := val.Render()
	if err != nil {
		t.Fatalf(`unexpected render error: %+v`, err)
	}
	eq(t, exp, out)
}
