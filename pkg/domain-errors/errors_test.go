package derrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	t.Run("matches code on direct error", func(t *testing.T) {
		err := New(CodeValidation, "email is required")
		assert.True(t, Is(err, CodeValidation))
		assert.False(t, Is(err, CodeNotFound))
	})

	t.Run("matches code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("replace step: %w", New(CodeBadRequest, "unknown step"))
		assert.True(t, Is(err, CodeBadRequest))
	})

	t.Run("uncoded error matches nothing", func(t *testing.T) {
		assert.False(t, Is(errors.New("boom"), CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "no draft")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("raw failure")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest: http.StatusBadRequest,
		CodeValidation: http.StatusUnprocessableEntity,
		CodeNotFound:   http.StatusNotFound,
		CodeConflict:   http.StatusConflict,
		CodeInternal:   http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("redis down")
	err := Wrap(CodeInternal, "save draft", cause)
	assert.ErrorIs(t, err, cause)
}
