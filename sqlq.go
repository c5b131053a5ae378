package sqlq

import (
	"database/sql"
	"log"
)

/*
Executes rendered statements. Satisfied by `*sql.DB` and `*sql.Tx`. Execution
is out of scope for this package; the interface only defines the boundary
that rendered statement text crosses, so that calling code can depend on this
package without committing to a particular driver.
*/
type Executor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
}

/*
Hook for non-fatal advisories, such as rendering an unfiltered destructive
statement in lax mode, or calling a value-taking mutator with zero columns.
Replaceable, mostly for tests. Must not be nil.
*/
var Warn = func(msg string) { log.Println(`[sqlq]`, msg) }
