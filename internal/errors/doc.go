// Package errors provides structured, coded errors for domkit.
//
// Every error carries a short code (e.g. "E201") that maps to a registered
// category, message and detail. Errors raised while decoding data files can
// point at the offending line and column, and Format renders them for a
// terminal:
//
//	err := errors.New("E101").
//	    WithLocation("rows.yaml", 4, 7).
//	    WithSuggestion("Use a mapping or a list of mappings for each selector")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Invalid render map
//	//
//	//   rows.yaml:4:7
//	//
//	//     3 │ ul:
//	//   → 4 │   li: 42
//	//       │       ^
//	//
//	//   Hint: Use a mapping or a list of mappings for each selector
//
// # Categories
//
//   - render: render map decoding and reconciliation input
//   - request: request encoding, decoding and transport failures
//   - validation: invalid arguments to library calls
//   - config: domkit.json problems
//   - cli: command line usage
package errors
