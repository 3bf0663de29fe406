package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/docfold/docfold/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorLimit(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		for i := 0; i < 5; i++ {
			_, err := db.PutDocument(ctx, &model.Document{
				ID:   fmt.Sprintf("doc-%d", i),
				Data: map[string]interface{}{"version": float64(i)},
			})
			require.NoError(t, err)
		}

		var docs []*model.Document
		err := db.Iterator(ctx, &model.IteratorOptions{Limit: 3}, func(i *Iterator) error {
			for doc := i.First(); i.Continue(); doc = i.Next() {
				docs = append(docs, doc)
			}
			return nil
		})
		require.NoError(t, err)

		// the limit bounds the yielded documents, the first one included
		require.Len(t, docs, 3)
		assert.Equal(t, "doc-0", docs[0].ID)
		assert.Equal(t, "doc-2", docs[2].ID)
	})
}

func TestIteratorStartKeyResume(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		for i := 0; i < 6; i++ {
			_, err := db.PutDocument(ctx, &model.Document{
				ID:   fmt.Sprintf("doc-%d", i),
				Data: map[string]interface{}{"version": float64(i)},
			})
			require.NoError(t, err)
		}

		var docs []*model.Document
		err := db.Iterator(ctx, &model.IteratorOptions{
			StartKey: append([]byte("doc-2"), 0),
			Limit:    2,
		}, func(i *Iterator) error {
			for doc := i.First(); i.Continue(); doc = i.Next() {
				docs = append(docs, doc)
			}
			return nil
		})
		require.NoError(t, err)

		require.Len(t, docs, 2)
		assert.Equal(t, "doc-3", docs[0].ID)
		assert.Equal(t, "doc-4", docs[1].ID)
	})
}
