// Package resilience keeps a failing warehouse from being hammered by every
// panel request.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeAbandoned
)

// CircuitBreaker opens after FailureThreshold consecutive failures, refuses
// calls for OpenTimeout, then lets HalfOpenMaxReq probes through. All probes
// must succeed for it to close again.
type CircuitBreaker struct {
	name string
	cfg  CircuitBreakerConfig
	now  func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	probes   int
	passed   int
	hook     func(name string, from, to CircuitState)
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:  name,
		cfg:   NormalizeCircuitBreakerConfig(cfg),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// OnStateChange registers fn for every transition. It is called without the
// breaker lock held.
func (b *CircuitBreaker) OnStateChange(fn func(name string, from, to CircuitState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hook = fn
}

func (b *CircuitBreaker) Name() string {
	return b.name
}

// State reports an expired open breaker as half-open, since the next call
// would be let through as a probe.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitStateOpen && b.cooledDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

// Do runs fn if the breaker admits it. A cancelled caller neither counts as a
// failure nor as a successful probe.
func (b *CircuitBreaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.settle(outcomeSuccess)
	case errors.Is(err, context.Canceled):
		b.settle(outcomeAbandoned)
	default:
		b.settle(outcomeFailure)
	}
	return err
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	from := b.state

	if b.state == CircuitStateOpen {
		if !b.cooledDown() {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
	}

	var err error
	if b.state == CircuitStateHalfOpen {
		if b.probes >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.probes++
		}
	}

	to, hook := b.state, b.hook
	b.mu.Unlock()

	b.fire(hook, from, to)
	return err
}

func (b *CircuitBreaker) settle(result outcome) {
	b.mu.Lock()
	from := b.state

	if b.state == CircuitStateHalfOpen && b.probes > 0 {
		b.probes--
	}

	switch {
	case result == outcomeAbandoned:
	case b.state == CircuitStateClosed && result == outcomeSuccess:
		b.failures = 0
	case b.state == CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case b.state == CircuitStateHalfOpen && result == outcomeSuccess:
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.moveTo(CircuitStateClosed)
		}
	case result == outcomeFailure:
		b.moveTo(CircuitStateOpen)
	}

	to, hook := b.state, b.hook
	b.mu.Unlock()

	b.fire(hook, from, to)
}

// moveTo resets the counters of the state being entered. Callers hold mu.
func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.probes = 0
	b.passed = 0
	switch state {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *CircuitBreaker) fire(hook func(string, CircuitState, CircuitState), from, to CircuitState) {
	if hook != nil && from != to {
		hook(b.name, from, to)
	}
}
