package adomd

import (
	"github.com/rs/zerolog"

	"github.com/go-data-exporter/adomd/typemap"
)

type options struct {
	logger   zerolog.Logger
	registry typemap.Registry
}

// Option configures a Connection and the cursors it creates.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:   zerolog.Nop(),
		registry: typemap.ADOMD,
	}
}

// WithLogger sets the logger used for query and reader events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry replaces the field type registry. The default is
// typemap.ADOMD.
func WithRegistry(registry typemap.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

type queryOptions struct {
	name string
}

// QueryOption configures a single query execution.
type QueryOption func(*queryOptions)

// QueryName labels the query in log events.
func QueryName(name string) QueryOption {
	return func(o *queryOptions) {
		o.name = name
	}
}

func newQueryOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
