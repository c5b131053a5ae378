/*
SQL statement builder. Oriented towards assembling PLAIN SQL text through an
incremental, chainable API, and re-validating/re-normalizing externally
supplied SQL through the same canonicalizer.

Key Features

• Fluent builder: `Stmt` accumulates clause fragments in any call order and
renders them in canonical clause order.

• Literal coercion: `Literal` and `CastLiteral` convert arbitrary Go values
into SQL literal text, with an optional forced-quoting mode.

• Safety: rendering an UPDATE or DELETE with no filter fails with
`ErrMissingFilter`, unless explicitly downgraded to a warning via `Stmt.Lax`.

• Canonicalization: `Format` re-cases keywords, collapses whitespace and
quoted `'null'` literals, and breaks clauses onto separate lines. `Classify`
counts statements and detects the leading verb, which backs the validating
constructor `FromRaw`.

• Parametrized queries: `Query` appends SQL with Postgres-style ordinal
params, renumerating them and interpolating subqueries.

• Struct support: `db`-tagged struct fields convert into ordered
column/value assigns for `InsertStruct`, `SetStruct`, `SelectStruct`.

Statement execution is out of scope; see `Executor` for the boundary
interface. This package renders text, it does not escape identifiers or
literals for a specific engine dialect.

See `Stmt`, `Simple`, `Query` for examples.
*/
package sqlq
