package tengoscript

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
)

var _ port.Mapper = (*Mapper)(nil)

// Mapper runs a tengo map function over document batches:
//
//	func(doc) { emit(doc.document_id, doc.version) }
//
// Reduce scripts are javascript only, tengo jobs combine with the
// built-in reducers.
type Mapper struct {
	script   *tengo.Script
	compiled *tengo.Compiled
}

func NewMapper(fn string) (*Mapper, error) {
	fn = `text := import("text")
	math := import("math")
	times := import("times")
	rand := import("rand")
	fmt := import("fmt")
	json := import("json")
	enum := import("enum")
	hex := import("hex")
	base64 := import("base64")

	_result := []
	_doc := {}
	emit := func (key, value) {
		_result = _result + [[ key, value, _doc._id ]]
	}
	mapFn := ` + fn + `
	for doc in docs {
		_doc = doc
		mapFn(doc)
	}`
	script := tengo.NewScript([]byte(fn))
	script.SetImports(stdlib.GetModuleMap(
		"text",   // regular expressions, string conversion, and manipulation
		"math",   // mathematical constants and functions
		"times",  // time-related functions
		"rand",   // random functions
		"fmt",    // formatting functions
		"json",   // JSON functions
		"enum",   // Enumeration functions
		"hex",    // hex encoding and decoding functions
		"base64", // base64 encoding and decoding functions
	))

	script.Add("docs", []interface{}{})

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script error %v: %w", fn, err)
	}

	return &Mapper{
		script:   script,
		compiled: compiled,
	}, nil
}

func (s *Mapper) Process(ctx context.Context, docs []*model.Document) ([]*model.Document, error) {
	simpleDocs := make([]interface{}, len(docs))
	for i, doc := range docs {
		doc.Data["_id"] = doc.ID
		doc.Data["_rev"] = doc.Rev
		simpleDocs[i] = doc.Data
	}

	err := s.compiled.Set("docs", simpleDocs)
	if err != nil {
		return nil, err
	}

	err = s.compiled.RunContext(ctx)
	if err != nil {
		return nil, err
	}

	resultData := s.compiled.Get("_result").Array()
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
