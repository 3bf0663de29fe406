package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/pkg/model"
)

const taskProcessCount = 10

type Task struct {
	Storage *storage.Storage
}

func (c Task) Run(ctx context.Context) {
	t := time.NewTicker(time.Millisecond * 500)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		err := c.ProcessAllTasks(ctx)
		if err != nil {
			log.Printf("Failed processing of all tasks: %v", err)
		}
	}
}

func (c Task) ProcessAllTasks(ctx context.Context) error {
	dbs, err := c.Storage.Databases(ctx)
	if err != nil {
		return err
	}

	for _, dbName := range dbs {
		db, err := c.Storage.Database(ctx, dbName)
		if err != nil {
			return err
		}

		err = c.ProcessTasksForDatabase(ctx, db)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c Task) ProcessTasksForDatabase(ctx context.Context, db *storage.Database) error {
	for {
		// check if context should be canceled
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tasks, err := db.GetTasks(ctx, taskProcessCount)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			err := c.ProcessTask(ctx, task)
			if err != nil {
				log.Printf("Failed to process %s due to: %v", task, err)
			}
		}
		err = db.CompleteTasks(ctx, tasks)
		if err != nil {
			return err
		}
		if len(tasks) < taskProcessCount {
			break
		}
	}

	return nil
}

func (c Task) ProcessTask(ctx context.Context, task *model.Task) error {
	db, err := c.Storage.Database(ctx, task.DBName)
	if err != nil {
		return err
	}

	switch task.Action {
	case model.ActionRefreshJobs:
		err = c.RefreshJobs(ctx, db, task)
	default:
		err = fmt.Errorf("unknown task action: %d", task.Action)
	}
	if err != nil {
		return err
	}

	return nil
}

// RefreshJobs re-runs every map-reduce job stored in the design
// documents of the database. A failing job doesn't stop the
// remaining jobs from running.
func (c Task) RefreshJobs(ctx context.Context, db *storage.Database, task *model.Task) error {
	docs, _, err := db.AllDesignDocs(ctx)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		for _, job := range model.JobsFromDocument(doc) {
			mr := MapReduce{
				DB:  db,
				Job: job,
			}
			_, err := mr.Run(ctx, task)
			if err != nil {
				log.Printf("Failed to run job %q of %s: %v", job.Name, doc.ID, err)
			}
		}
	}

	return nil
}
