package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrNotImplemented", ErrNotImplemented, "not implemented"},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat, "unsupported document format"},
		{"ErrInvalidDocumentClass", ErrInvalidDocumentClass, "invalid document class"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestErrors_Uniqueness(t *testing.T) {
	all := []error{ErrNotFound, ErrInvalidInput, ErrNotImplemented, ErrUnsupportedFormat, ErrInvalidDocumentClass}

	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("extract lesson.doc: %w", ErrUnsupportedFormat)

	assert.ErrorIs(t, wrapped, ErrUnsupportedFormat)
	assert.NotErrorIs(t, wrapped, ErrInvalidInput)
	assert.Equal(t, "extract lesson.doc: unsupported document format", wrapped.Error())
}
