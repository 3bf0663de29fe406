package tengoscript

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
			script: `func(doc) {}`,
			docs: []*model.Document{
				{ID: "1", Rev: "0-REV", Data: map[string]interface{}{
					"version": 1,
				}},
			},
			want:    []*model.Document{},
			wantErr: false,
		},
		{
			name: "one emit",
			script: `func(doc) {
				emit(doc.document_id, doc.version)
			}`,
			docs: []*model.Document{
				{ID: "1", Rev: "0-REV", Data: map[string]interface{}{
					"document_id": "Resume",
					"version":     int64(6),
				}},
			},
			want: []*model.Document{
				{
					ID:    "1",
					Key:   "Resume",
					Value: int64(6),
				},
			},
			wantErr: false,
		},
		{
			name: "two emit",
			script: `func(doc) {
				emit(doc._id, 1)
			}`,
			docs: []*model.Document{
				{ID: "1", Rev: "0-REV", Data: map[string]interface{}{
					"version": 1,
				}},
				{ID: "2", Rev: "0-REV", Data: map[string]interface{}{
					"version": 123,
				}},
			},
			want: []*model.Document{
				{
					ID:    "1",
					Key:   "1",
					Value: int64(1),
				}, {
					ID:    "2",
					Key:   "2",
					Value: int64(1),
				},
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMapper(tt.script)
			require.NoError(t, err)
			got, err := s.Process(context.Background(), tt.docs)
			require.NoError(t, err)

			assert.EqualValues(t, tt.want, got)
		})
	}
}
