package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		exclusion  bool
		unique     bool
		uniqueCode bool
	}{
		{name: "nil", err: nil},
		{name: "plain error", err: errors.New("boom")},
		{name: "exclusion", err: &pgconn.PgError{Code: "23P01"}, exclusion: true},
		{name: "wrapped exclusion", err: fmt.Errorf("tx: %w", &pgconn.PgError{Code: "23P01"}), exclusion: true},
		{
			name:       "confirmation code",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_confirmation_code"},
			unique:     true,
			uniqueCode: true,
		},
		{
			name:   "other unique index",
			err:    &pgconn.PgError{Code: "23505", ConstraintName: "idx_clients_shop_phone"},
			unique: true,
		},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exclusion, IsExclusionConflict(tt.err))
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err, ""))
			assert.Equal(t, tt.uniqueCode, IsUniqueViolation(tt.err, "idx_appointments_confirmation_code"))
		})
	}
}

func TestPersistenceKeepsBusinessErrors(t *testing.T) {
	nf := NotFoundErr("barber")
	assert.Same(t, nf, Persistence("load barber", nf))
	assert.Nil(t, Persistence("noop", nil))

	cause := errors.New("disk full")
	err := Persistence("save", cause)
	assert.True(t, IsKind(err, KindPersistence))
	assert.ErrorIs(t, err, cause)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(KindValidation))
	assert.Equal(t, http.StatusNotFound, StatusFor(KindNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(KindSlotConflict))
	assert.Equal(t, http.StatusConflict, StatusFor(KindInvalidState))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(KindBusinessRule))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(KindServiceUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(KindCodeExhausted))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(KindPersistence))
}
