package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification says whether a failed note or user query is worth
// retrying.
type ErrorClassification int

const (
	// NonRetryable covers constraint violations, bad SQL, data exceptions,
	// and anything unrecognised.
	NonRetryable ErrorClassification = iota

	// Retryable covers transient failures: lost connections, serialization
	// failures, deadlock rollbacks.
	Retryable
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] by inspecting the
// pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err to a *pgconn.PgError and maps its code. A nil error
// or a non-PostgreSQL error comes back NonRetryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err != nil && errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// retryablePgCodes is the set of PostgreSQL error codes a repository call
// may survive on a second attempt: class 08 (connection exceptions),
// class 40 (transaction rollback), and 57P03 (cannot connect now).
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// ClassifyPgError maps a *pgconn.PgError code to an [ErrorClassification].
// Codes outside [retryablePgCodes] (data exceptions, integrity violations,
// syntax errors, everything unknown) are NonRetryable.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := retryablePgCodes[pgErr.Code]; ok {
		return Retryable
	}
	return NonRetryable
}
