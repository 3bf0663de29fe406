package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDocument(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		rev, err := db.PutDocument(ctx, &model.Document{
			ID: "doc-1",
			Data: map[string]interface{}{
				"document_id": "Resume",
				"version":     float64(6),
			},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(rev, "1-"))

		doc, err := db.GetDocument(ctx, "doc-1")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, rev, doc.Rev)
		assert.Equal(t, "Resume", doc.Data["document_id"])
		assert.Equal(t, float64(6), doc.Data["version"])
	})
}

func TestPutDocumentConflict(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		rev, err := db.PutDocument(ctx, &model.Document{
			ID:   "doc-1",
			Data: map[string]interface{}{"version": 1},
		})
		require.NoError(t, err)

		// update without rev is rejected
		_, err = db.PutDocument(ctx, &model.Document{
			ID:   "doc-1",
			Data: map[string]interface{}{"version": 2},
		})
		assert.ErrorIs(t, err, port.ErrConflict)

		// update with the current rev passes
		rev2, err := db.PutDocument(ctx, &model.Document{
			ID:   "doc-1",
			Rev:  rev,
			Data: map[string]interface{}{"version": 2},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(rev2, "2-"))
	})
}

func TestDeleteDocument(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		rev, err := db.PutDocument(ctx, &model.Document{
			ID:   "doc-1",
			Data: map[string]interface{}{"version": 1},
		})
		require.NoError(t, err)

		_, err = db.DeleteDocument(ctx, "doc-1", rev)
		require.NoError(t, err)

		doc, err := db.GetDocument(ctx, "doc-1")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.True(t, doc.Deleted)
	})
}

func TestPutDocumentEnqueuesRefreshTask(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		_, err := db.PutDocument(ctx, &model.Document{
			ID:   "doc-1",
			Data: map[string]interface{}{"version": 1},
		})
		require.NoError(t, err)

		tasks, err := db.PeekTasks(ctx, 10)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, model.ActionRefreshJobs, tasks[0].Action)
		assert.Equal(t, "doc-1", tasks[0].DocID)
	})
}

func TestAllDocsSkipsDesignDocs(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		for _, id := range []string{"a", "b", "_design/jobs"} {
			_, err := db.PutDocument(ctx, &model.Document{
				ID:   id,
				Data: map[string]interface{}{"version": 1},
			})
			require.NoError(t, err)
		}

		docs, total, err := db.AllDocs(ctx, &model.IteratorOptions{
			SkipDesignDoc: true,
			SkipDeleted:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, "b", docs[1].ID)
	})
}

func TestPutDocumentMalformedRev(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		// a rev without a sequence on a fresh doc starts at 1
		rev, err := db.PutDocument(ctx, &model.Document{
			ID:   "doc-1",
			Rev:  "abc",
			Data: map[string]interface{}{"version": 1},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(rev, "1-"))
	})
}
