package controller

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/docfold/docfold/internal/adapter/fieldmap"
	"github.com/docfold/docfold/internal/adapter/reducer"
	"github.com/docfold/docfold/internal/adapter/script/gojascript"
	"github.com/docfold/docfold/internal/adapter/script/tengoscript"
	"github.com/docfold/docfold/internal/adapter/storage"
	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/fxamacker/cbor/v2"
)

const mapBatchSize = 1000

// MapReduce runs one job: map the source documents in batches, sort
// the emitted rows by key, fold every key down to one row and
// replace the output collection with the folded rows.
type MapReduce struct {
	DB  *storage.Database
	Job *model.MapReduceJob
}

// RunStats are the counts of one run, mirroring the counts of the
// external map-reduce command.
type RunStats struct {
	Input   int `json:"input"`
	Emitted int `json:"emitted"`
	Output  int `json:"output"`
}

func (c MapReduce) Mapper() (port.Mapper, error) {
	if c.Job.MapFn == "" {
		return fieldmap.NewMapper(c.Job.KeyField, c.Job.ValueField), nil
	}

	switch c.Job.Language {
	case "javascript", "":
		m, err := gojascript.NewMapper(c.Job.MapFn)
		return m, err
	case "tengo":
		m, err := tengoscript.NewMapper(c.Job.MapFn)
		return m, err
	default:
		return nil, fmt.Errorf("language %q unknown", c.Job.Language)
	}
}

// Reducer resolves the reduce step of the job, nil for jobs without
// reduce.
func (c MapReduce) Reducer() (port.Reducer, error) {
	fn := c.Job.ReduceFn
	switch {
	case fn == "":
		return nil, nil
	case reducer.IsBuiltin(fn):
		return reducer.New(fn)
	default:
		red, err := gojascript.NewReducer(fn)
		return red, err
	}
}

func (c MapReduce) Run(ctx context.Context, task *model.Task) (*RunStats, error) {
	err := c.Job.Normalize()
	if err != nil {
		return nil, err
	}

	mapper, err := c.Mapper()
	if err != nil {
		return nil, err
	}

	stats := &RunStats{}
	var rows []*model.Document

	// batches resume at the key past the last mapped document, so
	// tombstones filtered out of a batch never shift the next one
	var startKey []byte
	for {
		var docs []*model.Document
		err := c.DB.Iterator(ctx, &model.IteratorOptions{
			StartKey:      startKey,
			Limit:         mapBatchSize,
			SkipDeleted:   true,
			SkipDesignDoc: true,
			SkipLocalDoc:  true,
		}, func(i *storage.Iterator) error {
			total := i.Total()
			if total == 0 {
				return nil
			}
			if task != nil {
				task.ProcessingTotal = total
			}

			for doc := i.First(); i.Continue(); doc = i.Next() {
				docs = append(docs, doc)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			break
		}

		stats.Input += len(docs)
		emitted, err := mapper.Process(ctx, docs)
		if err != nil {
			return nil, err
		}
		rows = append(rows, emitted...)

		if task != nil {
			task.Processed += len(docs)
			err := c.DB.UpdateTask(ctx, task)
			if err != nil {
				return nil, err
			}
		}

		// a short batch means the cursor ran out, not that the
		// limit was hit
		if len(docs) < mapBatchSize {
			break
		}
		startKey = append([]byte(docs[len(docs)-1].ID), 0)
	}
	stats.Emitted = len(rows)

	sortRows(rows)

	out, err := c.reduceRows(rows)
	if err != nil {
		return nil, err
	}
	stats.Output = len(out)

	err = c.DB.ReplaceResults(ctx, c.Job.Out, out)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// reduceRows folds the key-sorted rows to one row per key. Keys with
// a single row never reach the reducer, their row is the result as
// is.
func (c MapReduce) reduceRows(rows []*model.Document) ([]*model.Document, error) {
	red, err := c.Reducer()
	if err != nil {
		return nil, err
	}
	if red == nil { // no reduce, rows pass through
		return rows, nil
	}

	groups := groupRows(rows)
	for _, group := range groups {
		if len(group) == 1 {
			continue
		}
		for _, row := range group {
			red.Reduce(row, true)
		}
	}
	reduced := red.Result()

	out := make([]*model.Document, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}
		if len(reduced) > 0 && reflect.DeepEqual(reduced[0].Key, group[0].Key) {
			out = append(out, reduced[0])
			reduced = reduced[1:]
		}
	}

	return out, nil
}

// groupRows splits key-sorted rows into one slice per key.
func groupRows(rows []*model.Document) [][]*model.Document {
	var groups [][]*model.Document
	for _, row := range rows {
		n := len(groups)
		if n == 0 || !reflect.DeepEqual(groups[n-1][0].Key, row.Key) {
			groups = append(groups, []*model.Document{row})
			continue
		}
		groups[n-1] = append(groups[n-1], row)
	}
	return groups
}

// sortRows orders emitted rows by their encoded key, keeping the
// emit order of equal keys.
func sortRows(rows []*model.Document) {
	type keyedRow struct {
		key []byte
		row *model.Document
	}

	keyed := make([]keyedRow, len(rows))
	for i, row := range rows {
		key, err := cbor.Marshal(row.Key)
		if err == nil {
			keyed[i].key = key
		}
		keyed[i].row = row
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return bytes.Compare(keyed[i].key, keyed[j].key) < 0
	})

	for i, kr := range keyed {
		rows[i] = kr.row
	}
}
