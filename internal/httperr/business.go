package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind groups business errors into the categories the API reports.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindServiceUnavailable Kind = "service_unavailable"
	KindSlotConflict       Kind = "slot_conflict"
	KindBusinessRule       Kind = "business_rule_violation"
	KindCodeExhausted      Kind = "code_generation_exhausted"
	KindPersistence        Kind = "persistence_failure"
	KindNotFound           Kind = "not_found"
	KindInvalidState       Kind = "invalid_state"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	msg := e.Code
	if e.Message != "" {
		msg = e.Code + ": " + e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *BusinessError {
	return &BusinessError{Kind: kind, Code: code, Message: message}
}

// ErrBusiness is the short form used for validation failures.
func ErrBusiness(code string) error {
	return &BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code, message string) error {
	return New(KindValidation, code, message)
}

func NotFoundErr(entity string) error {
	return New(KindNotFound, entity+"_not_found", entity+" not found")
}

func InvalidState(code, message string) error {
	return New(KindInvalidState, code, message)
}

func SlotConflict(code, message string) error {
	return New(KindSlotConflict, code, message)
}

// Persistence wraps a store error, keeping the original message.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return err
	}
	return &BusinessError{Kind: KindPersistence, Code: "persistence_failure", Message: op, Err: err}
}

func IsBusiness(err error, code string) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// ======================================================
// POSTGRES
// ======================================================

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// IsExclusionConflict reports an appointments_no_overlap violation.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
