// Package gtable builds display tables: it formats the cells of tabular data,
// substitutes missing and zero values, merges columns through patterns, and
// writes the result in multiple output formats.
//
// # Data
//
// A [Table] reads from a [Frame]. [RowFrame] and [ColumnFrame] hold values in
// memory, [ArrowFrame] wraps an Arrow record, and [ReadCSV] and [ReadXLSX]
// load files. Missing values are nil, [NA], float NaN, nil pointers and
// [database/sql/driver.Valuer] values whose value is nil. Frames implementing
// [NAChecker] decide for themselves.
//
// # Building a table
//
// Tables are immutable. Every builder method returns a new [Table]:
//
//	t, err := gtable.New(frame, gtable.WithLocale("de"))
//	t, err = t.FmtCurrency(gtable.Columns("price"), gtable.Currency("EUR"))
//	t, err = t.FmtDate(gtable.Columns("date"), gtable.DateStyle("day_month_year"))
//	t, err = t.SubMissing(gtable.MissingText("--"))
//	t, err = t.ColsMerge([]string{"low", "high"}, gtable.UsePattern("{0}<< to {1}>>"))
//
// Formatters target columns with [Columns] and rows with [Rows] or
// [RowsWhere], which takes an expression over row values such as
// `price > 100`.
//
// # Merge patterns
//
// A pattern refers to the merged columns as {0}, {1} and so on. Text between
// << and >> is kept only when every value it refers to is present, and such
// sections nest:
//
//	"{0}<< ({1})>>"           John, nil  -> "John"
//	"{0}<< to {1}<< ({2})>>>>" 10, 20, nil -> "10 to 20"
//
// A value is missing for a merge only when both its formatted and its
// original value are missing, so merges see the output of formatters and
// substitutions. Merges run in registration order after all formatting.
//
// # Formatting single values
//
// The ValFmt functions format plain values without a table:
//
//	gtable.ValFmtInteger([]float64{100000.1}, gtable.UseSeps(false)) // ["100000"]
//
// [Expr] defers formatting until a frame is available.
//
// # Output
//
// [Write] and [Marshal] build a table for the context of a [Format] and
// render it as JSON, YAML, CSV, TSV, a text table, Markdown, HTML, JSONL or
// a Go template. Use [ParseFormat] to convert a CLI flag string into a
// [Format].
//
// # Errors
//
// Configuration errors are returned when a formatter or merge is registered
// and wrap the package sentinels, such as [ErrMergeColumns],
// [ErrUnknownColumn] and [ErrInvalidOption]. A pattern referring to a missing
// column returns a [*PatternError]. Formatter failures surface from
// [Table.Build] as a [*CellError].
package gtable
