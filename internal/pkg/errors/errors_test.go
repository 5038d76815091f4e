package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("fetch nearby: %w", ErrProviderError.WithMessage("OVER_QUERY_LIMIT"))

	assert.True(t, Is(wrapped, ErrProviderError))
	assert.False(t, Is(wrapped, ErrNetworkError))
	assert.Equal(t, CodeProviderError, Code(wrapped))
	assert.Equal(t, "", Code(fmt.Errorf("plain")))
}

func TestAppError_CopiesDoNotMutateSentinel(t *testing.T) {
	detailed := ErrValidation.WithDetails(map[string]interface{}{"text": "500"})
	renamed := ErrValidation.WithMessage("other")

	assert.Nil(t, ErrValidation.Details)
	assert.Equal(t, "Enter a value between 1K - 20K", ErrValidation.Message)
	assert.Equal(t, "500", detailed.Details["text"])
	assert.Equal(t, "other", renamed.Message)
	assert.Equal(t, "VALIDATION_ERROR: other", renamed.Error())
}
