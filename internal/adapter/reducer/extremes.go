package reducer

import (
	"reflect"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

var _ port.Reducer = (*Extremes)(nil)

// Extremes folds every key into a {max, min} record. Inputs may be
// bare numbers (first reduction) or {max, min} records (rows already
// reduced once), so the fold can be re-applied to its own output in
// any grouping.
type Extremes struct {
	docs []*model.Document
}

func NewExtremes() *Extremes {
	return &Extremes{}
}

func (r *Extremes) Reduce(doc *model.Document, group bool) {
	v, ok := model.ExtremesFromValue(doc.Value)
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
	acc := last.Value.(model.Extremes)
	last.Value = acc.Merge(v)
}

func (r *Extremes) Result() []*model.Document {
	for _, doc := range r.docs {
		if acc, ok := doc.Value.(model.Extremes); ok {
			doc.Value = acc.AsValue()
		}
	}
	return r.docs
}
