// Package fieldmap emits rows from document fields without a map
// script. It is the default map step of a job:
//
//	key = doc.document_id, value = doc.version
package fieldmap

import (
	"context"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

var _ port.Mapper = (*Mapper)(nil)

type Mapper struct {
	keyField   string
	valueField string
}

func NewMapper(keyField, valueField string) *Mapper {
	return &Mapper{
		keyField:   keyField,
		valueField: valueField,
	}
}

// Process emits one row per document that carries both fields,
// documents missing either field emit nothing.
func (m *Mapper) Process(ctx context.Context, docs []*model.Document) ([]*model.Document, error) {
	result := make([]*model.Document, 0, len(docs))

	for _, doc := range docs {
		key := doc.Field(m.keyField)
		value := doc.Field(m.valueField)
		if key == nil || value == nil {
			continue
		}

		result = append(result, &model.Document{
			ID:    doc.ID,
			Key:   key,
			Value: value,
		})
	}

	return result, nil
}
