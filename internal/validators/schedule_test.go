package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Date  string `validate:"required,ymd"`
	Start string `validate:"hhmm"`
}

func TestScheduleTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	assert.NoError(t, v.Struct(sample{Date: "2026-03-02", Start: "09:30"}))
	assert.NoError(t, v.Struct(sample{Date: "2026-03-02", Start: "24:00"}))
	assert.NoError(t, v.Struct(sample{Date: "2026-03-02"}))

	assert.Error(t, v.Struct(sample{Date: "02/03/2026"}))
	assert.Error(t, v.Struct(sample{Date: "2026-02-30"}))
	assert.Error(t, v.Struct(sample{Date: "2026-03-02", Start: "9h30"}))
	assert.Error(t, v.Struct(sample{Date: "2026-03-02", Start: "25:00"}))
}
