package arena_errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	CodeUniqueConstraint     = "23505"
	CodeForeignKeyConstraint = "23503"
)

var (
	ErrInternal            = errors.New("internal service error. please try again later")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("entity not found")
	ErrConflict            = errors.New("entity with given key already exist")
	ErrInvalidState        = errors.New("operation not allowed in current state")
	ErrTimeLimitExceeded   = fmt.Errorf("%w, contest time limit exceeded", ErrInvalidState)
	ErrInsufficientCatalog = errors.New("not enough problems available for the requested contest")
)

// HandleDBErrors translates driver errors into domain errors. Constraint
// violations are mapped through errMsgs (pg error code -> constraint name
// -> user message).
func HandleDBErrors(
	err error,
	errMsgs map[string]map[string]string,
	contextMessage string,
) error {
	if errors.Is(err, pgx.ErrNoRows) {
		log.Errorf("%s, %v", contextMessage, ErrNotFound)
		return ErrNotFound
	}

	// assume its an internal error first
	err = fmt.Errorf(
		"%w, %s, %w",
		ErrInternal,
		contextMessage,
		err,
	)

	// check if its a pg error
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		log.Error(err)
		return err
	}

	if errMsgs == nil {
		log.Warnf("got null errMsgs")
		log.Error(err)
		return err
	}

	switch pgErr.Code {
	case CodeForeignKeyConstraint:
		msgForeignKey, ok := errMsgs[CodeForeignKeyConstraint]
		if !ok {
			log.Warnf("no msg map found for foreign key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrInvalidInput,
				pgErr.Detail,
			)
		}
		return handleConstraintError(pgErr, ErrInvalidInput, msgForeignKey)
	case CodeUniqueConstraint:
		msgUniqueConstraint, ok := errMsgs[CodeUniqueConstraint]
		if !ok {
			log.Warnf("no msg map found for unique key constraint.")
			return fmt.Errorf(
				"%w, %s",
				ErrConflict,
				pgErr.Detail,
			)
		}
		return handleConstraintError(pgErr, ErrConflict, msgUniqueConstraint)
	}

	// unknown error
	log.Error(err)
	return err
}

func handleConstraintError(
	pgErr *pgconn.PgError,
	sentinel error,
	msgs map[string]string,
) error {
	msg, ok := msgs[pgErr.ConstraintName]
	if !ok {
		log.Warnf(
			"unknown constraint violation %s, code %s",
			pgErr.ConstraintName,
			pgErr.Code,
		)
		msg = pgErr.Detail
	}
	err := fmt.Errorf(
		"%w, %s",
		sentinel,
		msg,
	)
	log.Error(err)
	return err
}
