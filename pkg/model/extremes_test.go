package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/mgo.v2/bson"
)

func TestExtremesMerge(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Extremes
	}{
		{
			name:   "two versions",
			values: []float64{1, 1.1},
			want:   Extremes{Max: 1.1, Min: 1},
		},
		{
			name:   "descending",
			values: []float64{1, 0.9},
			want:   Extremes{Max: 1, Min: 0.9},
		},
		{
			name:   "single version",
			values: []float64{6},
			want:   Extremes{Max: 6, Min: 6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewExtremes(tt.values[0])
			for _, v := range tt.values[1:] {
				acc = acc.Merge(NewExtremes(v))
			}
			assert.Equal(t, tt.want, acc)
		})
	}
}

func TestExtremesMergeGrouping(t *testing.T) {
	// merging pairwise in any grouping must equal the flat fold
	values := []float64{3, 1.5, 9, 0.25, 7}

	flat := NewExtremes(values[0])
	for _, v := range values[1:] {
		flat = flat.Merge(NewExtremes(v))
	}

	left := NewExtremes(values[0]).Merge(NewExtremes(values[1]))
	right := NewExtremes(values[2]).Merge(NewExtremes(values[3])).Merge(NewExtremes(values[4]))
	assert.Equal(t, flat, left.Merge(right))
	assert.Equal(t, flat, right.Merge(left))
	assert.Equal(t, flat, flat.Merge(flat))
}

func TestExtremesFromValue(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   Extremes
		wantOk bool
	}{
		{
			name:   "scalar",
			value:  int64(6),
			want:   Extremes{Max: 6, Min: 6},
			wantOk: true,
		},
		{
			name:   "reduced row",
			value:  map[string]interface{}{"max": 1.1, "min": float64(1)},
			want:   Extremes{Max: 1.1, Min: 1},
			wantOk: true,
		},
		{
			name:   "stored row",
			value:  bson.M{"max": float64(1), "min": 0.9},
			want:   Extremes{Max: 1, Min: 0.9},
			wantOk: true,
		},
		{
			name:   "not numeric",
			value:  "1.1",
			wantOk: false,
		},
		{
			name:   "incomplete pair",
			value:  map[string]interface{}{"max": 1.1},
			wantOk: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtremesFromValue(tt.value)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
