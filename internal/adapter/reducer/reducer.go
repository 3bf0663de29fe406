// Package reducer holds the built-in reduce functions. All of them
// fold key-sorted rows into one row per key and stay stable under
// re-application to their own output, so the orchestrator may batch
// and regroup freely.
package reducer

import (
	"fmt"
	"strings"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

// IsBuiltin reports whether the reduce name refers to a built-in
// reducer rather than a script.
func IsBuiltin(name string) bool {
	return strings.HasPrefix(name, "_")
}

// New resolves a built-in reducer by name.
func New(name string) (port.Reducer, error) {
	switch name {
	case model.ReduceMax:
		return NewMax(), nil
	case model.ReduceMin:
		return NewMin(), nil
	case model.ReduceExtremes:
		return NewExtremes(), nil
	case model.ReduceSum:
		return NewSum(), nil
	case model.ReduceCount:
		return NewCount(), nil
	default:
		return nil, fmt.Errorf("unknown built-in reducer %q", name)
	}
}
