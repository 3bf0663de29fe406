package storage

import (
	"context"
	"testing"

	"github.com/docfold/docfold/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceResults(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		err := db.ReplaceResults(ctx, "versions", []*model.Document{
			{ID: "doc-1", Key: "Schema", Value: float64(1)},
			{ID: "doc-2", Key: "mongoDB How-To", Value: 1.1},
		})
		require.NoError(t, err)

		docs, total, err := db.ResultDocs(ctx, "versions", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, docs, 2)

		byKey := make(map[interface{}]interface{})
		for _, doc := range docs {
			byKey[doc.Key] = doc.Value
		}
		assert.Equal(t, float64(1), byKey["Schema"])
		assert.Equal(t, 1.1, byKey["mongoDB How-To"])

		// replacing overwrites the prior content
		err = db.ReplaceResults(ctx, "versions", []*model.Document{
			{ID: "doc-3", Key: "Resume", Value: float64(6)},
		})
		require.NoError(t, err)

		docs, total, err = db.ResultDocs(ctx, "versions", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, docs, 1)
		assert.Equal(t, "Resume", docs[0].Key)
	})
}

func TestResultCollections(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		require.NoError(t, db.ReplaceResults(ctx, "versions", nil))
		require.NoError(t, db.ReplaceResults(ctx, "latest", nil))

		names, err := db.ResultCollections(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"versions", "latest"}, names)

		require.NoError(t, db.DeleteResults(ctx, "latest"))
		names, err = db.ResultCollections(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"versions"}, names)
	})
}

func TestTaskQueue(t *testing.T) {
	WithTestDatabase(t, func(ctx context.Context, db *Database) {
		err := db.AddTasks(ctx, []*model.Task{
			{Action: model.ActionRefreshJobs, DBName: "test", DocID: "doc-1"},
			{Action: model.ActionRefreshJobs, DBName: "test", DocID: "doc-2"},
		})
		require.NoError(t, err)

		count, err := db.TaskCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		tasks, err := db.GetTasks(ctx, 10)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.False(t, tasks[0].ActiveSince.IsZero())

		require.NoError(t, db.CompleteTasks(ctx, tasks))
		count, err = db.TaskCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
