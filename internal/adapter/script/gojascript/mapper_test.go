package gojascript

import (
	"context"
	"testing"

	"github.com/docfold/docfold/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapperProcess(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		docs    []*model.Document
		want    []*model.Document
		wantErr bool
	}{
		{
			name:   "empty emit",
			script: `function(doc) {}`,
			docs: []*model.Document{
				{ID: "1", Rev: "0-REV", Data: map[string]interface{}{
					"version": 1,
				}},
			},
			want:    []*model.Document{},
			wantErr: false,
		},
		{
			name: "one emit per doc",
			script: `function(doc) {
				emit(doc.document_id, doc.version)
			}`,
			docs: []*model.Document{
				{ID: "1", Rev: "0-REV", Data: map[string]interface{}{
					"document_id": "Resume",
					"version":     int64(6),
				}},
			},
			want: []*model.Document{{
				ID:    "1",
				Key:   "Resume",
				Value: int64(6),
			}},
			wantErr: false,
		},
		{
			name: "structured emit",
			script: `function(doc) {
				emit(doc.document_id, {max: doc.version, min: doc.version})
			}`,
			docs: []*model.Document{
				{ID: "1", Rev: "0-REV", Data: map[string]interface{}{
					"document_id": "Schema",
					"version":     0.9,
				}},
			},
			want: []*model.Document{{
				ID:    "1",
				Key:   "Schema",
				Value: map[string]interface{}{"max": 0.9, "min": 0.9},
			}},
			wantErr: false,
		},
		{
			name:    "broken script",
			script:  `function(doc) { emit(`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMapper(tt.script)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			got, err := s.Process(context.Background(), tt.docs)
			require.NoError(t, err)
			assert.EqualValues(t, tt.want, got)
		})
	}
}
