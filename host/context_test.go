package host

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/c123chain/cdk-go/hostfuncs"
)

func TestInvocationContext(t *testing.T) {
	_, ok := InvocationID(context.Background())
	assert.False(t, ok)
	assert.Nil(t, callFrom(context.Background()))

	call := &hostfuncs.Call{}
	id := uuid.New()
	ctx := withCall(context.Background(), call, id)

	got, ok := InvocationID(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Same(t, call, callFrom(ctx))
}
