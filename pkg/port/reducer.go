package port

import "github.com/docfold/docfold/pkg/model"

// Reducer folds emitted rows into one row per key. Rows arrive
// sorted by key; with group set a new result row is started whenever
// the key changes.
//
// Reduce must be associative and commutative: the fold may be applied
// to any grouping of a key's values, and re-applied to its own
// output, without changing the final row. Keys with a single emitted
// value are resolved by the orchestrator and never reach a reducer.
type Reducer interface {
	Reduce(doc *model.Document, group bool)
	Result() []*model.Document
}
