package export

import (
	"context"
	"fmt"

	"github.com/apitree/apitree/parser"
	"github.com/apitree/apitree/tree"
)

// ProgressFunc receives (current, total) after each endpoint completes,
// successfully or not. current counts from 1 to total.
type ProgressFunc func(current, total int)

// Failure records one endpoint whose materialization failed.
type Failure struct {
	Endpoint *tree.EndpointNode
	Err      error
}

// Result summarizes one export run.
type Result struct {
	// Total is the number of endpoints selected for the run
	Total int
	// Succeeded is the number of endpoints materialized without error
	Succeeded int
	// Failures lists the endpoints that errored, in run order
	Failures []Failure
	// Cancelled reports that the context ended before all endpoints
	// were submitted
	Cancelled bool
}

// Exporter runs endpoints through a Driver one at a time.
type Exporter struct {
	driver   Driver
	builder  *Builder
	logger   parser.Logger
	progress ProgressFunc
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithBuilder sets the request builder.
func WithBuilder(b *Builder) ExporterOption {
	return func(x *Exporter) {
		if b != nil {
			x.builder = b
		}
	}
}

// WithLogger sets the logger used for per-endpoint diagnostics.
func WithLogger(logger parser.Logger) ExporterOption {
	return func(x *Exporter) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) ExporterOption {
	return func(x *Exporter) {
		x.progress = fn
	}
}

// NewExporter creates an Exporter for the given driver.
func NewExporter(driver Driver, opts ...ExporterOption) *Exporter {
	x := &Exporter{
		driver:  driver,
		builder: NewBuilder(),
		logger:  parser.NopLogger{},
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Export materializes the given endpoints strictly sequentially. One
// endpoint failing is logged and recorded in the result; the run moves
// on to the next endpoint. When ctx ends, no further endpoints are
// submitted and the result reports Cancelled; an in-flight
// materialization is left to finish on its own.
func (x *Exporter) Export(ctx context.Context, endpoints []*tree.EndpointNode) Result {
	result := Result{Total: len(endpoints)}

	for i, endpoint := range endpoints {
		if err := ctx.Err(); err != nil {
			x.logger.Warn("export cancelled",
				"completed", i, "total", result.Total)
			result.Cancelled = true
			return result
		}

		req := x.builder.BuildRequest(endpoint)
		if err := x.driver.Materialize(ctx, req); err != nil {
			x.logger.Error("endpoint export failed",
				"method", endpoint.Method(),
				"path", endpoint.Path,
				"error", err)
			result.Failures = append(result.Failures, Failure{Endpoint: endpoint, Err: err})
		} else {
			result.Succeeded++
		}

		if x.progress != nil {
			x.progress(i+1, result.Total)
		}
	}
	return result
}

// ExportTags flattens the tag nodes and exports every endpoint in tree
// order: tags as given, paths in first-seen order, verbs in source order.
func (x *Exporter) ExportTags(ctx context.Context, tags []*tree.TagNode) Result {
	var endpoints []*tree.EndpointNode
	for _, tag := range tags {
		endpoints = append(endpoints, tag.Endpoints()...)
	}
	return x.Export(ctx, endpoints)
}

// Err returns a summary error when the run had failures or was
// cancelled, nil otherwise.
func (r Result) Err() error {
	switch {
	case r.Cancelled:
		return fmt.Errorf("export cancelled after %d of %d endpoints", r.Succeeded+len(r.Failures), r.Total)
	case len(r.Failures) > 0:
		return fmt.Errorf("export completed with %d of %d endpoints failed", len(r.Failures), r.Total)
	default:
		return nil
	}
}
