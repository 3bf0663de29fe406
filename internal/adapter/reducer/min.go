package reducer

import (
	"reflect"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

var _ port.Reducer = (*Min)(nil)

// Min keeps the smallest numeric value per key.
type Min struct {
	docs []*model.Document
}

func NewMin() *Min {
	return &Min{}
}

func (r *Min) Reduce(doc *model.Document, group bool) {
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
	cur, ok := model.ToFloat64(last.Value)
	if ok && v < cur {
		last.Value = v
	}
}

func (r *Min) Result() []*model.Document {
	return r.docs
}
