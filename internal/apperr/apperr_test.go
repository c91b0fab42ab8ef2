package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", UnknownTicker("ZZZZ"), KindUnknownTicker},
		{"wrapped", fmt.Errorf("fetch: %w", EmptyInput("no headlines")), KindEmptyInput},
		{"network cause", Network("yahoo fetch", context.DeadlineExceeded), KindNetwork},
		{"canceled", Canceled("run cancelled", context.Canceled), KindCanceled},
		{"plain", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.False(t, Is(nil, KindInternal))
	assert.True(t, Is(RateLimited("slow down"), KindRateLimited))
	assert.False(t, Is(RateLimited("slow down"), KindNetwork))
}

func TestErrorUnwrap(t *testing.T) {
	err := Network("symbol search", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "[NETWORK] symbol search: context deadline exceeded", err.Error())
	assert.Equal(t, "[EMPTY_INPUT] no headlines", EmptyInput("no headlines").Error())
}
