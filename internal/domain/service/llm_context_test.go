package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskAndUserContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", TaskFromContext(ctx))
	assert.Empty(t, UserFromContext(ctx))

	ctx = WithTask(ctx, " detect ")
	ctx = WithUser(ctx, "   ")
	assert.Equal(t, "detect", TaskFromContext(ctx))
	assert.Empty(t, UserFromContext(ctx))

	ctx = WithUser(ctx, "u-1")
	assert.Equal(t, "u-1", UserFromContext(ctx))
}
