package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSequence(t *testing.T) {
	for _, tc := range []struct {
		rev  string
		want int
	}{
		{"", 1},
		{"1-abc", 2},
		{"41-abc", 42},
		{"abc", 1},
		{"x-abc", 1},
		{"-abc", 1},
	} {
		doc := Document{Rev: tc.rev}
		assert.Equal(t, tc.want, doc.NextSequence(), "rev %q", tc.rev)
	}
}
