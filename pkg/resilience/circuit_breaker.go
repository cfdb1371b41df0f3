// Package resilience содержит повтор с экспоненциальной задержкой и circuit breaker
// для вызовов внешних хранилищ.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"authgate/pkg/logger"
)

// State - состояние circuit breaker.
type State int

// Состояния circuit breaker.
const (
	// StateClosed - вызовы проходят.
	StateClosed State = iota
	// StateOpen - вызовы отклоняются до истечения OpenTimeout.
	StateOpen
	// StateHalfOpen - пропускаются пробные вызовы.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitReject      = "circuit breaker rejected call"
)

// ErrCircuitOpen возвращается, когда вызов отклонен открытым breaker.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig - пороги переключения состояний.
type BreakerConfig struct {
	// FailureThreshold - подряд идущие ошибки, после которых breaker открывается.
	FailureThreshold int
	// OpenTimeout - время в открытом состоянии до первой пробы.
	OpenTimeout time.Duration
	// SuccessThreshold - успешные пробы, после которых breaker закрывается.
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает настройки по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker безопасен для конкурентного использования.
type CircuitBreaker struct {
	name   string
	config BreakerConfig
	now    func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker создает закрытый breaker. Неположительные пороги заменяются значениями по умолчанию.
func NewCircuitBreaker(name string, config BreakerConfig) *CircuitBreaker {
	defaults := DefaultBreakerConfig()
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.OpenTimeout <= 0 {
		config.OpenTimeout = defaults.OpenTimeout
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaults.SuccessThreshold
	}

	return &CircuitBreaker{
		name:   name,
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
}

// Execute вызывает fn, если breaker пропускает вызов, и учитывает результат.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.Allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.Record(ctx, err)
	return err
}

// Allow сообщает, можно ли выполнить вызов. Открытый breaker по истечении OpenTimeout
// переходит в полуоткрытое состояние.
func (cb *CircuitBreaker) Allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.config.OpenTimeout {
			logger.Log(ctx).Debug(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
			return false
		}
		cb.transition(ctx, StateHalfOpen)
		return true
	default:
		return true
	}
}

// Record учитывает результат вызова.
func (cb *CircuitBreaker) Record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.successes = 0
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.FailureThreshold {
				cb.transition(ctx, StateOpen)
			}
		case StateHalfOpen:
			cb.transition(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// transition вызывается под mu.
func (cb *CircuitBreaker) transition(ctx context.Context, next State) {
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", cb.state),
		zap.Stringer("to", next),
		zap.Int("failures", cb.failures))

	cb.state = next
	cb.failures = 0
	cb.successes = 0
	if next == StateOpen {
		cb.openedAt = cb.now()
	}
}
