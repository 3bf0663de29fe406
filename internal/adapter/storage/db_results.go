package storage

import (
	"context"
	"strconv"
	"strings"

	"github.com/docfold/docfold/pkg/model"
	"github.com/fxamacker/cbor/v2"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/mgo.v2/bson"
)

// ReplaceResults drops the result collection and rewrites it from
// the given rows in one transaction. Rows are stored in emit key
// order under a cbor encoded key with a sequence suffix, so several
// rows may share an emitted key when a job runs without reduce.
func (d *Database) ReplaceResults(ctx context.Context, name string, docs []*model.Document) error {
	return d.Update(func(tx *bolt.Tx) error {
		bucketName := model.ResultBucket(name)

		if tx.Bucket(bucketName) != nil {
			err := tx.DeleteBucket(bucketName)
			if err != nil {
				return err
			}
		}

		bucket, err := tx.CreateBucket(bucketName)
		if err != nil {
			return err
		}

		for _, doc := range docs {
			data, err := bson.Marshal(doc)
			if err != nil {
				return err
			}
			key, err := cbor.Marshal(doc.Key)
			if err != nil {
				return err
			}
			seq, err := bucket.NextSequence()
			if err != nil {
				return err
			}
			key = []byte(string(key) + " " + strconv.FormatUint(seq, 10))
			err = bucket.Put(key, data)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// ResultDocs returns the rows of a result collection.
func (d *Database) ResultDocs(ctx context.Context, name string, opts *model.IteratorOptions) ([]*model.Document, int, error) {
	var docs []*model.Document
	var total int

	io := &model.IteratorOptions{BucketName: model.ResultBucket(name)}
	if opts != nil {
		io.Skip = opts.Skip
		io.Limit = opts.Limit
	}

	err := d.Iterator(ctx, io, func(i *Iterator) error {
		total = i.Total()
		for doc := i.First(); i.Continue(); doc = i.Next() {
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// ResultCollections lists the existing result collections.
func (d *Database) ResultCollections(ctx context.Context) ([]string, error) {
	var names []string
	prefix := string(model.ResultBucket(""))

	err := d.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			if strings.HasPrefix(string(name), prefix) {
				names = append(names, strings.TrimPrefix(string(name), prefix))
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (d *Database) DeleteResults(ctx context.Context, name string) error {
	return d.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(model.ResultBucket(name)) != nil {
			return tx.DeleteBucket(model.ResultBucket(name))
		}
		return nil
	})
}

// ResultStats returns bucket statistics of one result collection.
func (d *Database) ResultStats(ctx context.Context, name string) (*model.IndexStats, error) {
	stats := &model.IndexStats{}
	err := d.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(model.ResultBucket(name))
		if bucket == nil {
			return nil
		}
		s := bucket.Stats()
		stats.Keys = uint64(s.KeyN)
		stats.Documents = uint64(s.KeyN)
		stats.Used = uint64(s.BranchInuse + s.LeafInuse)
		stats.Allocated = uint64(s.BranchAlloc + s.LeafAlloc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
