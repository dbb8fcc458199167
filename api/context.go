package api

import (
	"context"
)

type keyType string

const (
	flashKey     keyType = "flash"
	requestIDKey keyType = "requestID"
)

// ctxWithFlash adds the pending flash message to the context
func ctxWithFlash(ctx context.Context, message string) context.Context {
	return context.WithValue(ctx, flashKey, message)
}

// ctxGetFlash retrieves the flash message, empty when there is none
func ctxGetFlash(ctx context.Context) string {
	return ctxGetStringValue(ctx, flashKey)
}

func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func ctxGetRequestID(ctx context.Context) string {
	return ctxGetStringValue(ctx, requestIDKey)
}

func ctxGetStringValue(ctx context.Context, key keyType) string {
	value, _ := ctx.Value(key).(string)
	return value
}
