package auth

import (
	"context"
)

type ctxKey string

var ctxModelKey ctxKey = "auth.model"

// ModelFromContext returns the model injected by Model.Middleware.
func ModelFromContext(ctx context.Context) (*Model, bool) {
	m, ok := ctx.Value(ctxModelKey).(*Model)
	return m, ok && m != nil
}

// WithModel returns a copy of ctx carrying m.
func WithModel(ctx context.Context, m *Model) context.Context {
	return context.WithValue(ctx, ctxModelKey, m)
}
