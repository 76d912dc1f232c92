// Package gate wraps every exposed operation of the API. It is the single
// chokepoint for identity resolution and for normalizing failures into each
// operation's configured default value; no raw error ever crosses it.
package gate

import (
	"context"
	"fmt"
	"time"

	"fbclone-backend/application/auth"
	"fbclone-backend/pkg/observability"

	"go.uber.org/zap"
)

// Gate carries the resolver and observability shared by all operations.
type Gate struct {
	resolver *auth.Resolver
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewGate creates a request gate.
func NewGate(resolver *auth.Resolver, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	return &Gate{
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
	}
}

// Handler is the guarded function: invoked with the resolved identity and
// the operation arguments.
type Handler[A, R any] func(ctx context.Context, ident auth.Identity, args A) (R, error)

// Op is a registered operation. Call never returns an error: a rejected
// credential, a handler error, or a handler panic all yield the configured
// default value.
type Op[A, R any] struct {
	gate        *Gate
	name        string
	def         R
	bypass      bool
	requireUser bool
	handler     Handler[A, R]
}

// Option configures a registered operation.
type Option func(*opConfig)

type opConfig struct {
	bypass      bool
	requireUser bool
}

// Bypass skips identity resolution entirely. For pure public actions such
// as account creation and login.
func Bypass() Option {
	return func(c *opConfig) { c.bypass = true }
}

// RequireUser rejects anonymous callers, returning the default without
// invoking the handler.
func RequireUser() Option {
	return func(c *opConfig) { c.requireUser = true }
}

// Register creates a guarded operation with the given default value.
func Register[A, R any](g *Gate, name string, def R, handler Handler[A, R], opts ...Option) *Op[A, R] {
	var cfg opConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Op[A, R]{
		gate:        g,
		name:        name,
		def:         def,
		bypass:      cfg.bypass,
		requireUser: cfg.requireUser,
		handler:     handler,
	}
}

// Call resolves the caller identity once, then runs the handler inside the
// failure boundary.
func (o *Op[A, R]) Call(ctx context.Context, credential string, args A) R {
	start := time.Now()

	ident := auth.Anonymous
	if !o.bypass {
		var err error
		ident, err = o.gate.resolver.Resolve(ctx, credential)
		if err != nil {
			o.gate.logger.Info("Operation rejected",
				zap.String("operation", o.name),
				zap.Error(err),
			)
			o.gate.metrics.RecordOperation(o.name, false, time.Since(start))
			return o.def
		}
		if o.requireUser && ident.IsAnonymous() {
			o.gate.logger.Info("Operation requires a resolved identity",
				zap.String("operation", o.name),
			)
			o.gate.metrics.RecordOperation(o.name, false, time.Since(start))
			return o.def
		}
	}

	result, err := o.invoke(ctx, ident, args)
	if err != nil {
		o.gate.logger.Error("Operation failed",
			zap.String("operation", o.name),
			zap.String("userID", ident.UserID),
			zap.Error(err),
		)
		o.gate.metrics.RecordOperation(o.name, false, time.Since(start))
		return o.def
	}

	o.gate.metrics.RecordOperation(o.name, true, time.Since(start))
	return result
}

// invoke runs the handler, converting panics into errors so the boundary
// stays total.
func (o *Op[A, R]) invoke(ctx context.Context, ident auth.Identity, args A) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation %s panicked: %v", o.name, r)
		}
	}()
	return o.handler(ctx, ident, args)
}
