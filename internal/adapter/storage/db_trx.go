package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strconv"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/fxamacker/cbor/v2"
	bolt "go.etcd.io/bbolt"
	"gopkg.in/mgo.v2/bson"
)

type Transaction struct {
	Database   *Database
	BucketName []byte
	tx         *bolt.Tx
}

func (tx *Transaction) SetBucketName(bucketName []byte) {
	tx.BucketName = bucketName
}

func (tx *Transaction) bucket() []byte {
	if tx.BucketName != nil {
		return tx.BucketName
	}
	return model.DocsBucket
}

func (tx *Transaction) PutRaw(ctx context.Context, key []byte, raw interface{}) error {
	bucket, err := tx.tx.CreateBucketIfNotExists(tx.bucket())
	if err != nil {
		return err
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return err
	}

	return bucket.Put(key, data)
}

func (tx *Transaction) GetRaw(ctx context.Context, key []byte, value interface{}) error {
	bucket := tx.tx.Bucket(tx.bucket())
	if bucket == nil {
		return port.ErrUnknownBucket
	}

	data := bucket.Get(key)
	if data == nil {
		return port.ErrNotFound
	}

	return bson.Unmarshal(data, value)
}

// PutDocument stores the document under a fresh revision and
// enqueues a refresh of the stored map-reduce jobs.
func (tx *Transaction) PutDocument(ctx context.Context, doc *model.Document) (rev string, err error) {
	// verify that the transaction is valid for update
	oldDoc, err := tx.GetDocument(ctx, doc.ID)
	if err != nil {
		return "", err
	}
	if oldDoc != nil {
		if !oldDoc.ValidUpdateRevision(doc) {
			return "", port.ErrConflict
		}
	}

	// find next sequences (rev, local)
	revSeq := doc.NextSequence()
	doc.LocalSeq, err = tx.NextSequence()
	if err != nil {
		return
	}

	hash := md5.New()
	err = cbor.NewEncoder(hash).Encode(doc)
	if err != nil {
		return
	}
	rev = strconv.Itoa(revSeq) + "-" + hex.EncodeToString(hash.Sum(nil))
	doc.Rev = rev

	err = tx.PutRaw(ctx, []byte(doc.ID), doc)
	if err != nil {
		return
	}

	if !doc.IsLocalDoc() {
		err = tx.Database.AddTasksTx(ctx, tx, []*model.Task{
			{
				Action:          model.ActionRefreshJobs,
				DBName:          tx.Database.Name(),
				DocID:           doc.ID,
				ProcessingTotal: 1,
			},
		})
	}

	return
}

func (tx *Transaction) GetDocument(ctx context.Context, docID string) (*model.Document, error) {
	var doc model.Document

	err := tx.GetRaw(ctx, []byte(docID), &doc)
	if err == port.ErrNotFound || err == port.ErrUnknownBucket {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Data == nil {
		doc.Data = make(map[string]interface{})
	}
	doc.Data["_id"] = doc.ID
	doc.Data["_rev"] = doc.Rev
	if doc.Deleted {
		doc.Data["_deleted"] = true
	}

	return &doc, nil
}

func (tx *Transaction) DeleteDocument(ctx context.Context, docID, rev string) (*model.Document, error) {
	doc := &model.Document{
		ID:      docID,
		Rev:     rev,
		Deleted: true,
	}

	_, err := tx.PutDocument(ctx, doc)

	return doc, err
}

func (tx *Transaction) NextSequence() (uint64, error) {
	bucket, err := tx.tx.CreateBucketIfNotExists(model.DocsBucket)
	if err != nil {
		return 0, err
	}
	return bucket.NextSequence()
}

// Sequence returns the current sequence
func (tx *Transaction) Sequence() uint64 {
	bucket := tx.tx.Bucket(model.DocsBucket)
	if bucket == nil {
		return 0
	}
	return bucket.Sequence()
}

func (tx *Transaction) Tx() *bolt.Tx {
	return tx.tx
}
