package gojascript

import (
	"fmt"
	"log"
	"reflect"

	"github.com/docfold/docfold/pkg/model"
	"github.com/docfold/docfold/pkg/port"
	"github.com/dop251/goja"
)

// reduceOver limits how many values are passed to one script
// invocation, larger groups are folded through rereduce.
const reduceOver = 100

var _ port.Reducer = (*Reducer)(nil)

// Reducer folds the rows of each key with a javascript function of
// the form
//
//	function(keys, values, rereduce) { ... }
//
// Within a key the values are reduced in batches of reduceOver, the
// batch results then merged in one rereduce pass. The script is
// therefore required to be associative and to accept its own output
// when rereduce is true.
type Reducer struct {
	vm         *goja.Runtime
	reduceOver int

	currentKey interface{}
	haveKey    bool
	pending    []*model.Document
	partials   []interface{}
	results    []*model.Document
}

func NewReducer(source string) (*Reducer, error) {
	vm := goja.New()
	fn := `
	var _result = null;
	var _keys = [];
	var _values = [];
	var rereduce = false;
	function sum(values) {
		var _sum = 0;
		values.forEach(function (value) {
			_sum += value
		});
		return _sum;
	}`
	vm.Set("println", fmt.Println)
	_, err := vm.RunString(fn)
	if err != nil {
		return nil, fmt.Errorf("script error %v: %w", fn, err)
	}
	_, err = vm.RunScript("reducer.js", "var reduceFn = "+source+";")
	if err != nil {
		return nil, fmt.Errorf("script error %v: %w", source, err)
	}

	return &Reducer{
		vm:         vm,
		reduceOver: reduceOver,
	}, nil
}

func (r *Reducer) Reduce(doc *model.Document, group bool) {
	if group && r.haveKey && !reflect.DeepEqual(doc.Key, r.currentKey) {
		r.flush()
	}
	r.currentKey = doc.Key
	r.haveKey = true

	r.pending = append(r.pending, doc)
	if len(r.pending) >= r.reduceOver {
		r.reducePending()
	}
}

func (r *Reducer) Result() []*model.Document {
	if r.haveKey {
		r.flush()
	}
	return r.results
}

func (r *Reducer) reducePending() {
	values := make([]interface{}, len(r.pending))
	keys := make([]interface{}, len(r.pending))
	for i, doc := range r.pending {
		keys[i] = doc.Key
		values[i] = doc.Value
	}
	r.pending = nil

	r.partials = append(r.partials, r.reduce(keys, values, false))
}

// flush finishes the current key and emits its result row.
func (r *Reducer) flush() {
	if len(r.pending) > 0 {
		r.reducePending()
	}

	var value interface{}
	if len(r.partials) == 1 {
		value = r.partials[0]
	} else if len(r.partials) > 1 {
		value = r.reduce(nil, r.partials, true)
	}

	r.results = append(r.results, &model.Document{
		Key:   r.currentKey,
		Value: value,
	})

	r.partials = nil
	r.haveKey = false
}

func (r *Reducer) reduce(keys, values []interface{}, rereduce bool) interface{} {
	r.vm.Set("rereduce", rereduce)
	r.vm.Set("_keys", keys)
	r.vm.Set("_values", values)

	_, err := r.vm.RunString(`_result = reduceFn(_keys, _values, rereduce);`)
	if err != nil {
		log.Printf("JS ERR: %v", err)
		return nil
	}

	return r.vm.Get("_result").Export()
}
