package fieldmap

import (
	"context"
	"testing"

	"github.com/docfold/docfold/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperProcess(t *testing.T) {
	m := NewMapper("document_id", "version")

	docs := []*model.Document{
		{ID: "1", Data: map[string]interface{}{
			"document_id": "Schema",
			"version":     0.9,
		}},
		{ID: "2", Data: map[string]interface{}{
			"document_id": "Schema",
			"version":     float64(1),
			"author":      "unrelated",
		}},
		{ID: "3", Data: map[string]interface{}{
			// no version, emits nothing
			"document_id": "Draft",
		}},
	}

	rows, err := m.Process(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Schema", rows[0].Key)
	assert.Equal(t, 0.9, rows[0].Value)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, float64(1), rows[1].Value)
}

func TestMapperNestedPath(t *testing.T) {
	m := NewMapper("meta.name", "meta.rev")

	docs := []*model.Document{
		{ID: "1", Data: map[string]interface{}{
			"meta": map[string]interface{}{
				"name": "Resume",
				"rev":  int64(6),
			},
		}},
	}

	rows, err := m.Process(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Resume", rows[0].Key)
	assert.Equal(t, int64(6), rows[0].Value)
}
