package logticket

import "context"

type requestIDKey struct{}

// WithRequestID 把追踪ID挂到 context 上，转发日志会带上它
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
