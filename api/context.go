package api

import (
	"context"
	"encoding/json"
)

type keyType string

const (
	requestIDKey keyType = "requestID"
	payloadKey   keyType = "payload"
)

// ctxWithRequestID adds a request ID to the context
func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ctxGetRequestID retrieves the request ID from the context, or "" if none was set
func ctxGetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}

// ctxWithPayload stores the decoded request body
func ctxWithPayload(ctx context.Context, p *payload) context.Context {
	return context.WithValue(ctx, payloadKey, p)
}

// ctxGetPayload returns the decoded request body. Requests that never went
// through a guard chain get an empty payload.
func ctxGetPayload(ctx context.Context) *payload {
	if p, ok := ctx.Value(payloadKey).(*payload); ok {
		return p
	}
	return &payload{fields: map[string]json.RawMessage{}}
}
