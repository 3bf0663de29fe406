package port

import (
	"context"

	"github.com/docfold/docfold/pkg/model"
)

// Mapper runs the map step of a job over a batch of documents and
// returns the emitted rows (Key, Value, ID set). Mappers must be
// pure: no state may survive between batches and the emitted rows
// may only depend on the individual input documents.
type Mapper interface {
	Process(ctx context.Context, docs []*model.Document) ([]*model.Document, error)
}
