package reducer

import (
	"reflect"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

var _ port.Reducer = (*Sum)(nil)

// Sum adds up the numeric values per key.
type Sum struct {
	docs []*model.Document
}

func NewSum() *Sum {
	return &Sum{}
}

func (r *Sum) Reduce(doc *model.Document, group bool) {
	v, ok := model.ToFloat64(doc.Value)
	if !ok {
		return
	}

	docs := r.docs
	if len(docs) == 0 || (group && !reflect.DeepEqual(docs[len(docs)-1].Key, doc.Key)) {
		r.docs = append(docs, &model.Document{
			Key:   doc.Key,
			Value: v,
		})
		return
	}

	last := docs[len(docs)-1]
	last.Value = last.Value.(float64) + v
}

func (r *Sum) Result() []*model.Document {
	return r.docs
}
