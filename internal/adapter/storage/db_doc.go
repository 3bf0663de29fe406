package storage

import (
	"context"

	"github.com/docfold/docfold/pkg/model"
	bolt "go.etcd.io/bbolt"
)

func (d *Database) Transaction(ctx context.Context, fn func(tx *Transaction) error) error {
	return d.Update(func(btx *bolt.Tx) error {
		return fn(&Transaction{tx: btx, Database: d})
	})
}

func (d *Database) RTransaction(ctx context.Context, fn func(tx *Transaction) error) error {
	return d.View(func(btx *bolt.Tx) error {
		return fn(&Transaction{tx: btx, Database: d})
	})
}

func (d *Database) PutDocument(ctx context.Context, doc *model.Document) (string, error) {
	var rev string
	err := d.Transaction(ctx, func(tx *Transaction) error {
		var err error
		rev, err = tx.PutDocument(ctx, doc)
		return err
	})
	if err != nil {
		return "", err
	}

	err = d.updateSearchIndex(doc)
	if err != nil {
		return "", err
	}

	return rev, nil
}

func (d *Database) GetDocument(ctx context.Context, docID string) (*model.Document, error) {
	var doc *model.Document
	err := d.RTransaction(ctx, func(tx *Transaction) error {
		var err error
		doc, err = tx.GetDocument(ctx, docID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (d *Database) DeleteDocument(ctx context.Context, docID, rev string) (*model.Document, error) {
	var doc *model.Document
	err := d.Transaction(ctx, func(tx *Transaction) error {
		var err error
		doc, err = tx.DeleteDocument(ctx, docID, rev)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = d.updateSearchIndex(doc)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// AllDesignDocs returns the design documents of the database, the
// carriers of the stored map-reduce jobs.
func (d *Database) AllDesignDocs(ctx context.Context) ([]*model.Document, int, error) {
	return d.AllDocs(ctx, &model.IteratorOptions{
		StartKey:    []byte(model.DesignDocPrefix),
		EndKey:      []byte(model.DesignDocPrefix + "\xff"),
		SkipDeleted: true,
	})
}

func (d *Database) AllDocs(ctx context.Context, opts *model.IteratorOptions) ([]*model.Document, int, error) {
	var docs []*model.Document
	var total int
	err := d.Iterator(ctx, opts, func(i *Iterator) error {
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
