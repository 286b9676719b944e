package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"net"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"

	"github.com/jsx-dev/intramural-league/internal/domain/persistence"
	"github.com/jsx-dev/intramural-league/internal/platform/logging"
	"github.com/jsx-dev/intramural-league/internal/platform/resilience"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// isConnectionFailure reports errors that mean the database could not be
// reached or the session died, as opposed to a rejected statement.
func isConnectionFailure(err error) bool {
	if err == nil {
		return false
	}
	if crerr.Is(err, driver.ErrBadConn) || crerr.Is(err, sql.ErrConnDone) {
		return true
	}
	// The caller's own deadline or cancellation says nothing about the
	// database. context.DeadlineExceeded also satisfies net.Error, so it is
	// ruled out before the network check below.
	if crerr.Is(err, context.DeadlineExceeded) || crerr.Is(err, context.Canceled) {
		return false
	}

	var pqErr *pq.Error
	if crerr.As(err, &pqErr) {
		// 08: connection exception, 57P0x: admin shutdown / crash / cannot connect now.
		code := string(pqErr.Code)
		return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57P0")
	}

	var netErr net.Error
	return crerr.As(err, &netErr)
}

// wrapDBError annotates err with op and marks connection-level failures so
// callers can match them with errors.Is(err, persistence.ErrConnectionFailure).
func wrapDBError(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrap(err, op)
	if isConnectionFailure(err) {
		return markConnectionFailure(wrapped)
	}
	return wrapped
}

// markConnectionFailure keeps both err and the sentinel reachable through the
// standard errors.Is chain.
func markConnectionFailure(err error) error {
	return fmt.Errorf("%w: %w", persistence.ErrConnectionFailure, err)
}

// Guard trips a circuit breaker on connection failures so a dead database is
// not hammered by every request. One Guard is shared by all repositories on
// the same pool.
type Guard struct {
	breaker *resilience.CircuitBreaker
	enabled bool
}

// NewGuard logs every breaker transition on logger, keeping any hook already
// set in cfg.
func NewGuard(cfg resilience.CircuitBreakerConfig, logger *logging.Logger) Guard {
	if logger == nil {
		logger = logging.Default()
	}
	next := cfg.OnStateChange
	cfg.OnStateChange = func(from, to resilience.CircuitState) {
		if to == resilience.CircuitStateOpen {
			logger.Warn("postgres circuit opened", "from", string(from))
		} else {
			logger.Info("postgres circuit state changed", "from", string(from), "to", string(to))
		}
		if next != nil {
			next(from, to)
		}
	}

	return Guard{
		breaker: resilience.NewCircuitBreaker(cfg),
		enabled: cfg.Enabled,
	}
}

func (g Guard) run(op string, fn func() error) error {
	if g.enabled && g.breaker != nil {
		if err := g.breaker.Allow(); err != nil {
			return markConnectionFailure(crerr.Wrap(err, op))
		}
	}

	err := wrapDBError(fn(), op)
	if g.enabled && g.breaker != nil {
		if crerr.Is(err, persistence.ErrConnectionFailure) {
			g.breaker.RecordFailure()
		} else {
			g.breaker.RecordSuccess()
		}
	}

	return err
}

func nullStringToString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func stringToNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
