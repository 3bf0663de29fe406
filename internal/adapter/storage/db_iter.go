package storage

import (
	"bytes"
	"context"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/mgo.v2/bson"
)

// Iterator runs fn with an iterator over the bucket selected by the
// options, the docs bucket if none is given.
func (d *Database) Iterator(ctx context.Context, opts *model.IteratorOptions, fn func(i *Iterator) error) error {
	return d.View(func(tx *bolt.Tx) error {
		io := ForDocuments()
		if opts != nil {
			io = WithOptions(opts)
		}
		iter := NewIterator(tx, io)
		return fn(iter)
	})
}

var _ port.Iterator = (*Iterator)(nil)

type Iterator struct {
	Skip     int
	Limit    int
	StartKey []byte
	EndKey   []byte

	SkipDeleted   bool
	SkipDesignDoc bool
	SkipLocalDoc  bool

	key []byte

	CleanKey func([]byte) string
	KeyFn    func([]byte) []byte

	bucketName []byte
	tx         *bolt.Tx
	cursor     *bolt.Cursor
}

func NewIterator(tx *bolt.Tx, opts ...IteratorOption) *Iterator {
	iter := &Iterator{
		Skip:        0,
		Limit:       -1,
		SkipDeleted: true,
		StartKey:    nil,
		EndKey:      nil,
		tx:          tx,
	}

	for _, opt := range opts {
		opt(iter)
	}

	return iter
}

type IteratorOption func(*Iterator)

func ForDocuments() IteratorOption {
	return func(i *Iterator) {
		i.bucketName = model.DocsBucket
	}
}

func ForResults(name string) IteratorOption {
	return func(i *Iterator) {
		i.bucketName = model.ResultBucket(name)
	}
}

func WithOptions(opts *model.IteratorOptions) IteratorOption {
	return func(i *Iterator) {
		i.Skip = opts.Skip
		i.Limit = opts.Limit
		i.StartKey = opts.StartKey
		i.EndKey = opts.EndKey
		i.SkipDeleted = opts.SkipDeleted
		i.SkipDesignDoc = opts.SkipDesignDoc
		i.SkipLocalDoc = opts.SkipLocalDoc
		i.CleanKey = opts.CleanKey
		i.KeyFn = opts.KeyFunc
		i.bucketName = opts.BucketName
		if i.bucketName == nil {
			i.bucketName = model.DocsBucket
		}
		if i.Limit == 0 {
			i.Limit = -1
		}
	}
}

func (i *Iterator) bucket() *bolt.Bucket {
	return i.tx.Bucket(i.bucketName)
}

func (i *Iterator) Total() int {
	bucket := i.bucket()
	if bucket == nil {
		return 0
	}
	return bucket.Stats().KeyN
}

func (i *Iterator) First() *model.Document {
	bucket := i.bucket()
	if bucket == nil {
		return nil
	}
	i.cursor = bucket.Cursor()

	var v []byte
	if i.StartKey != nil {
		i.key, v = i.cursor.Seek(i.StartKey)
	} else {
		i.key, v = i.cursor.First()
	}

	if i.Skip != 0 && i.Continue() {
		for j := 0; j < i.Skip && i.key != nil; j++ {
			i.key, v = i.cursor.Next()
		}
	}

	for i.key != nil && i.Continue() {
		var doc model.Document
		i.unmarshalDoc(i.key, v, &doc)

		if i.skipped(&doc) {
			i.key, v = i.cursor.Next()
			continue
		}

		return &doc
	}

	return nil
}

func (i *Iterator) Next() *model.Document {
	if i.cursor == nil {
		return i.First()
	}

	var v []byte
	var doc model.Document
	found := false

	for i.key, v = i.cursor.Next(); i.Continue(); i.key, v = i.cursor.Next() {
		i.unmarshalDoc(i.key, v, &doc)

		if i.skipped(&doc) {
			continue
		}

		// doc found, reduce iter limit
		if i.Limit != -1 {
			i.Limit--
		}
		found = true
		break
	}

	if !found {
		return nil
	}

	return &doc
}

func (i *Iterator) skipped(doc *model.Document) bool {
	if i.SkipDeleted && doc.Deleted {
		return true
	}
	if i.SkipDesignDoc && doc.IsDesignDoc() {
		return true
	}
	if i.SkipLocalDoc && doc.IsLocalDoc() {
		return true
	}
	return false
}

func (i *Iterator) Continue() bool {
	if i.key == nil { // last pair
		return false
	}

	if i.Limit == 0 { // no more limit
		return false
	}

	if i.EndKey == nil {
		return true
	}

	return bytes.Compare(i.key, i.EndKey) <= 0
}

// Remaining returns the remaining documents starting at
// the current position till the end of the range
func (i *Iterator) Remaining() int {
	if i.cursor == nil {
		bucket := i.bucket()
		if bucket == nil {
			return 0
		}
		i.cursor = bucket.Cursor()
	}

	var remaining int
	for {
		k, _ := i.cursor.Next()
		if k == nil {
			break
		}
		remaining++
	}
	i.cursor.Seek(i.key)
	return remaining
}

func (i *Iterator) IncLimit() {
	i.Limit++
}

func (i *Iterator) SetSkip(v int) {
	i.Skip = v
}

func (i *Iterator) SetSkipDesignDoc(v bool) {
	i.SkipDesignDoc = v
}

func (i *Iterator) SetSkipLocalDoc(v bool) {
	i.SkipLocalDoc = v
}

func (i *Iterator) SetLimit(v int) {
	i.Limit = v
}

func (i *Iterator) SetStartKey(v []byte) {
	if i.KeyFn != nil {
		v = i.KeyFn(v)
	}
	i.StartKey = v
}

func (i *Iterator) SetEndKey(v []byte) {
	if i.KeyFn != nil {
		v = i.KeyFn(v)
	}
	i.EndKey = v
}

func (i *Iterator) unmarshalDoc(k, v []byte, doc *model.Document) {
	bson.Unmarshal(v, doc) // nolint: errcheck

	// provide the bucket key via the document, result rows carry
	// their own emitted key
	if i.CleanKey != nil {
		doc.Key = i.CleanKey(k)
	} else if doc.Key == nil {
		doc.Key = string(k)
	}
}
