package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

const searchIndexDir = "search.bleve"

var _ port.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is the full text index of one database, maintained
// alongside the document writes.
type SearchIndex struct {
	idx bleve.Index
}

func (d *Database) searchIndexPath() string {
	return filepath.Join(d.databaseDir, searchIndexDir)
}

// OpenSearchIndex opens the database search index, creating it on
// first use.
func (d *Database) OpenSearchIndex() (*SearchIndex, error) {
	path := d.searchIndexPath()

	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		err = os.MkdirAll(d.databaseDir, 0755)
		if err != nil {
			return nil, err
		}
		mapping := bleve.NewIndexMapping()
		index, err = bleve.New(path, mapping)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open search index %q: %w", path, err)
	}

	return &SearchIndex{idx: index}, nil
}

func (si *SearchIndex) Index(id string, data interface{}) error {
	return si.idx.Index(id, data)
}

func (si *SearchIndex) Delete(id string) error {
	return si.idx.Delete(id)
}

func (si *SearchIndex) Close() error {
	return si.idx.Close()
}

func (d *Database) updateSearchIndex(doc *model.Document) error {
	if d.search == nil || doc.IsDesignDoc() || doc.IsLocalDoc() {
		return nil
	}

	if doc.Deleted {
		return d.search.Delete(doc.ID)
	}
	return d.search.Index(doc.ID, doc.Data)
}

// SearchHit is one search match.
type SearchHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Search runs a bleve query string query against the database
// documents.
func (d *Database) Search(ctx context.Context, query string, limit int) ([]SearchHit, uint64, error) {
	if limit <= 0 {
		limit = 25
	}

	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit

	res, err := d.search.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	hits := make([]SearchHit, len(res.Hits))
	for i, hit := range res.Hits {
		hits[i] = SearchHit{ID: hit.ID, Score: hit.Score}
	}

	return hits, res.Total, nil
}
