package reducer

import (
	"reflect"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

var _ port.Reducer = (*Count)(nil)

// Count counts the values per key.
type Count struct {
	docs []*model.Document
}

func NewCount() *Count {
	return &Count{}
}

func (r *Count) Reduce(doc *model.Document, group bool) {
	docs := r.docs
	if len(docs) == 0 || (group && !reflect.DeepEqual(docs[len(docs)-1].Key, doc.Key)) {
		r.docs = append(docs, &model.Document{
			Key:   doc.Key,
			Value: int64(1),
		})
		return
	}

	last := docs[len(docs)-1]
	last.Value = last.Value.(int64) + 1
}

func (r *Count) Result() []*model.Document {
	return r.docs
}
