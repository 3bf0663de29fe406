package gojascript

import (
	"context"
	"fmt"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/dop251/goja"
)

var _ port.Mapper = (*Mapper)(nil)

// Mapper runs a javascript map function over document batches. The
// script gets the document and emits zero or more key/value pairs:
//
//	function(doc) { emit(doc.document_id, doc.version) }
type Mapper struct {
	vm *goja.Runtime
}

func NewMapper(fn string) (*Mapper, error) {
	vm := goja.New()
	fn = `
	var _result = [];
	var _doc = {};
	var docs = [];
	function emit(key, value) {
		_result.push([key, value, _doc._id]);
	}
	var mapFn = ` + fn + `;`
	_, err := vm.RunString(fn)
	if err != nil {
		return nil, fmt.Errorf("script error %v: %w", fn, err)
	}

	return &Mapper{
		vm: vm,
	}, nil
}

func (s *Mapper) Process(ctx context.Context, docs []*model.Document) ([]*model.Document, error) {
	simpleDocs := make([]interface{}, len(docs))
	for i, doc := range docs {
		doc.Data["_id"] = doc.ID
		doc.Data["_rev"] = doc.Rev
		simpleDocs[i] = doc.Data
	}

	s.vm.Set("docs", simpleDocs)

	_, err := s.vm.RunString(`_result = [];
	docs.forEach(function (doc) {
		_doc = doc;
		mapFn(doc);
	});`)
	if err != nil {
		return nil, err
	}

	resultData, ok := s.vm.Get("_result").Export().([]interface{})
	if !ok {
		return nil, fmt.Errorf("unable to export")
	}
	result := make([]*model.Document, len(resultData))

	for i, rd := range resultData {
		row := rd.([]interface{})
		result[i] = &model.Document{
			Key:   row[0],
			Value: row[1],
			ID:    row[2].(string),
		}
	}

	return result, nil
}
