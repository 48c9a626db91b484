package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestAppointmentInsertError(t *testing.T) {
	overlap := &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}
	dupCode := &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_confirmation_code"}
	otherUnique := &pgconn.PgError{Code: "23505", ConstraintName: "idx_clients_shop_phone"}
	boom := errors.New("connection reset")

	assert.NoError(t, appointmentInsertError(nil))

	err := appointmentInsertError(fmt.Errorf("insert: %w", overlap))
	assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))

	assert.ErrorIs(t, appointmentInsertError(dupCode), domain.ErrDuplicateCode)
	assert.Same(t, otherUnique, appointmentInsertError(otherUnique))
	assert.Same(t, boom, appointmentInsertError(boom))
}
