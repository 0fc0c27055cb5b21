package optbridge

import (
	"context"

	"github.com/analogrelay/optbridge/internal/logger"
)

// Resolver combines a Producer with the Fallback consulted on absence.
type Resolver struct {
	producer Producer
	fallback *Fallback
	log      *logger.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFallback makes the Resolver read f instead of the process-wide fallback.
func WithFallback(f *Fallback) ResolverOption {
	return func(r *Resolver) {
		r.fallback = f
	}
}

// WithLogger sets the logger used for debug output of each resolution.
func WithLogger(l *logger.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = l
	}
}

// NewResolver returns a Resolver reading from p.
func NewResolver(p Producer, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		producer: p,
		fallback: DefaultFallback(),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fallback returns the fallback the Resolver consults.
func (r *Resolver) Fallback() *Fallback {
	return r.fallback
}

// Resolve calls the producer exactly once and returns its value, or the
// current fallback value when the producer reports absence.
func (r *Resolver) Resolve() int32 {
	v, _ := r.Lookup()
	return v
}

// Lookup is Resolve that also reports whether the value came from the
// producer (true) or from the fallback (false).
func (r *Resolver) Lookup() (int32, bool) {
	return r.resolve(r.producer.Produce())
}

// ResolveContext is Resolve for producers that may block. If ctx is done before
// the producer returns, the outcome counts as absence.
func (r *Resolver) ResolveContext(ctx context.Context) int32 {
	if err := ctx.Err(); err != nil {
		r.log.DebugWith("resolve canceled before produce", "error", err)
		return r.fallback.Get()
	}

	// Buffered so a late producer never blocks after we stop waiting.
	done := make(chan Envelope, 1)
	go func() {
		done <- r.producer.Produce()
	}()

	select {
	case env := <-done:
		v, _ := r.resolve(env)
		return v
	case <-ctx.Done():
		r.log.DebugWith("producer did not return in time", "error", ctx.Err())
		return r.fallback.Get()
	}
}

func (r *Resolver) resolve(env Envelope) (int32, bool) {
	if v, ok := env.Decode().Get(); ok {
		r.log.DebugWith("envelope present", "value", v)
		return v, true
	}
	fb := r.fallback.Get()
	r.log.DebugWith("envelope absent, using fallback", "discriminant", env.IsSome, "fallback", fb)
	return fb, false
}

// Resolve resolves p against the process-wide fallback.
func Resolve(p Producer) int32 {
	return NewResolver(p).Resolve()
}
