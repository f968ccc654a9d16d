package ollamalink

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "ErrSourceNotFound",
			err:     ErrSourceNotFound,
			wantMsg: "ollamalink: models directory not found",
		},
		{
			name:    "ErrSourceUnreadable",
			err:     ErrSourceUnreadable,
			wantMsg: "ollamalink: models directory not readable",
		},
		{
			name:    "ErrDestUnavailable",
			err:     ErrDestUnavailable,
			wantMsg: "ollamalink: destination directory unavailable",
		},
		{
			name:    "ErrSymlinkUnsupported",
			err:     ErrSymlinkUnsupported,
			wantMsg: "ollamalink: symbolic links unsupported",
		},
		{
			name:    "ErrLocked",
			err:     ErrLocked,
			wantMsg: "ollamalink: destination locked by another run",
		},
		{
			name:    "ErrNoHome",
			err:     ErrNoHome,
			wantMsg: "ollamalink: cannot determine home directory",
		},
		{
			name:    "ErrInvalidName",
			err:     ErrInvalidName,
			wantMsg: "ollamalink: invalid model name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestErrorPrefixes(t *testing.T) {
	// All package errors share the module prefix so they are attributable
	// when surfaced through a parent CLI.
	for _, err := range []error{
		ErrSourceNotFound, ErrSourceUnreadable, ErrDestUnavailable,
		ErrSymlinkUnsupported, ErrLocked, ErrNoHome, ErrInvalidName,
	} {
		assert.True(t, strings.HasPrefix(err.Error(), "ollamalink: "), err.Error())
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: /some/dir", ErrSourceNotFound)

	assert.True(t, errors.Is(wrapped, ErrSourceNotFound))
	assert.False(t, errors.Is(wrapped, ErrSourceUnreadable))
	assert.Contains(t, wrapped.Error(), "/some/dir")
}
