package model

import (
	"encoding/json"

	"gopkg.in/mgo.v2/bson"
)

// Extremes is the structured reduce value holding the largest and
// smallest number seen for a key.
type Extremes struct {
	Max float64 `json:"max" bson:"max" mapstructure:"max"`
	Min float64 `json:"min" bson:"min" mapstructure:"min"`
}

// NewExtremes builds the initial accumulator from a single value.
func NewExtremes(v float64) Extremes {
	return Extremes{Max: v, Min: v}
}

// Merge folds another pair into the accumulator. Merging is
// associative, commutative and idempotent, so pairs may be combined
// in any grouping and re-merged with prior merge results.
func (e Extremes) Merge(o Extremes) Extremes {
	if o.Max > e.Max {
		e.Max = o.Max
	}
	if o.Min < e.Min {
		e.Min = o.Min
	}
	return e
}

// ToFloat64 coerces the numeric types that reach reducers from the
// script engines and from stored rows. Returns false for anything
// that is not a number.
func ToFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// AsValue returns the row value shape of the pair, the same shape
// script reducers produce.
func (e Extremes) AsValue() map[string]interface{} {
	return map[string]interface{}{"max": e.Max, "min": e.Min}
}

// ExtremesFromValue interprets a reduce input value: a bare number
// becomes a degenerate pair, a previously reduced row keeps its
// max/min. Returns false for values of neither shape.
func ExtremesFromValue(v interface{}) (Extremes, bool) {
	if f, ok := ToFloat64(v); ok {
		return NewExtremes(f), true
	}

	var m map[string]interface{}
	switch t := v.(type) {
	case map[string]interface{}:
		m = t
	case bson.M:
		m = t
	case Extremes:
		return t, true
	default:
		return Extremes{}, false
	}

	max, okMax := ToFloat64(m["max"])
	min, okMin := ToFloat64(m["min"])
	if !okMax || !okMin {
		return Extremes{}, false
	}
	return Extremes{Max: max, Min: min}, true
}
