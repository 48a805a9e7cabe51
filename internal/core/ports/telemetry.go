package ports

import (
	"context"
	"io"
)

// Telemetry records progress vertices for long-running operations.
type Telemetry interface {
	// Record starts a new vertex with the given name.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one unit of recorded work.
type Vertex interface {
	// Stdout returns a writer capturing standard output for the vertex.
	Stdout() io.Writer

	// Stderr returns a writer capturing error output for the vertex.
	Stderr() io.Writer

	// Complete marks the vertex as finished, with err nil on success.
	Complete(err error)

	// Cached marks the vertex as served from cache.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
