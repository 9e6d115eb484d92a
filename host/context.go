package host

import (
	"context"

	"github.com/google/uuid"

	"github.com/c123chain/cdk-go/hostfuncs"
)

// contextKey is a private type for context value keys.
type contextKey string

const (
	callKey         contextKey = "call"
	invocationIDKey contextKey = "invocation_id"
)

func withCall(ctx context.Context, call *hostfuncs.Call, id uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, callKey, call)
	return context.WithValue(ctx, invocationIDKey, id)
}

func callFrom(ctx context.Context) *hostfuncs.Call {
	call, _ := ctx.Value(callKey).(*hostfuncs.Call)
	return call
}

// InvocationID returns the ID of the invocation ctx belongs to. It is
// available to ContractCaller and Migrator implementations.
func InvocationID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(invocationIDKey).(uuid.UUID)
	return id, ok
}
