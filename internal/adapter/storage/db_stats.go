package storage

import (
	"context"
	"os"

	"github.com/docfold/docfold/pkg/model"
	bolt "go.etcd.io/bbolt"
)

type Stats struct {
	FileSize uint64
	DocCount uint64
	Alloc    uint64
	InUse    uint64
}

func (d *Database) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	err := d.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(model.DocsBucket)
		if bucket == nil {
			return nil
		}
		s := bucket.Stats()
		stats.DocCount = uint64(s.KeyN)
		stats.InUse = uint64(s.BranchInuse + s.LeafInuse)
		stats.Alloc = uint64(s.BranchAlloc + s.LeafAlloc)
		return nil
	})
	if err != nil {
		return stats, err
	}

	fi, err := os.Stat(d.db.Path())
	if err == nil {
		stats.FileSize = uint64(fi.Size())
	}

	return stats, nil
}
