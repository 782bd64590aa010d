package validation

import (
	"testing"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  interface{}
		want []apperror.FieldFailure
	}{
		{
			name: "valid tag",
			req:  &dto.SaveTagRequest{Tag: &dto.TagDto{TagId: uintPtr(0), Name: "Angular"}},
		},
		{
			name: "missing tag",
			req:  &dto.SaveTagRequest{},
			want: []apperror.FieldFailure{{Field: "tag", Rule: "required"}},
		},
		{
			name: "every failing tag rule is reported",
			req:  &dto.SaveTagRequest{Tag: &dto.TagDto{}},
			want: []apperror.FieldFailure{
				{Field: "tag.tag_id", Rule: "required"},
				{Field: "tag.name", Rule: "required"},
			},
		},
		{
			name: "note title and version",
			req:  &dto.SaveNoteRequest{Note: &dto.NoteDto{Version: -1}},
			want: []apperror.FieldFailure{
				{Field: "note.title", Rule: "required"},
				{Field: "note.version", Rule: "gte", Param: "0"},
			},
		},
		{
			name: "zero id",
			req:  &dto.RemoveNoteRequest{},
			want: []apperror.FieldFailure{{Field: "note_id", Rule: "required"}},
		},
		{
			name: "blank credentials",
			req:  &dto.AuthenticateRequest{},
			want: []apperror.FieldFailure{
				{Field: "username", Rule: "required"},
				{Field: "password", Rule: "required"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)

			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *apperror.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Failures)
		})
	}
}
