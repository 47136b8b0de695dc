package validation

import (
	"testing"

	domainerrors "journal/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `name:"title" validate:"notblank,maxrunes=5"`
	IDs   []uint `name:"ids" validate:"max=2,unique,dive,gt=0"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sample{Title: "héllo", IDs: []uint{1, 2}}))
	assert.NoError(t, v.Validate(sample{Title: "x"}))
}

func TestValidator_Failures(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		input  sample
		detail string
	}{
		{name: "blank title", input: sample{Title: " \t"}, detail: "title is required"},
		{name: "long title counted in runes", input: sample{Title: "ééééééé"}, detail: "title must not exceed 5 characters"},
		{name: "too many ids", input: sample{Title: "ok", IDs: []uint{1, 2, 3}}, detail: "ids must contain at most 2 items"},
		{name: "duplicate ids", input: sample{Title: "ok", IDs: []uint{4, 4}}, detail: "ids must not contain duplicates"},
		{name: "zero id", input: sample{Title: "ok", IDs: []uint{0}}, detail: "must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestValidator_Var(t *testing.T) {
	v := New()

	err := v.Var("name", "   ", "notblank")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "name is required")

	assert.NoError(t, v.Var("name", "Work", "notblank"))
}
