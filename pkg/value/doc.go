// Package value provides helpers for loosely typed data: the nested
// map[string]any / []any trees produced by JSON and YAML decoders.
//
// It covers type predicates, dotted-path access (Get, Set, Remix),
// structural merging and cloning (Merge, Clone) and uniform iteration
// (Each).
//
//	data := map[string]any{}
//	value.Set(data, "user.name", "ada", false)
//	value.Get(data, "user.name", "")      // "ada"
//	value.Get(data, "user.email", "n/a")  // "n/a"
package value
