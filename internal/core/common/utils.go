package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// DecodeJSON unmarshals a response body into a type T.
// An empty body is an error: every backend endpoint answers with an object.
func DecodeJSON[T any](data []byte) (T, error) {
	var result T
	if len(bytes.TrimSpace(data)) == 0 {
		return result, fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

type requestIDKey struct{}

// WithRequestID stores a correlation id on the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func NewRequestID() string {
	return uuid.New().String()
}
