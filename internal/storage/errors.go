package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrBackendUnavailable marks a database backend that could not be reached at startup.
// It only ever appears in the demotion log; callers see the file backend instead.
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// PersistenceError is a database backend failure
type PersistenceError struct {
	Op   string
	Code string // SQLSTATE when the driver reported one
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("storage: %s failed (sqlstate %s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func newPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	pe := &PersistenceError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		pe.Code = pgErr.Code
	}
	return pe
}

// IsUniqueViolation reports a 23505 from Postgres
func (e *PersistenceError) IsUniqueViolation() bool {
	return e.Code == "23505"
}

// FileError is a file backend failure
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
