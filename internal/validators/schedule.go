package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// Register adds the scheduling tags to gin's validator engine:
//
//	hhmm  "HH:MM" wall-clock time, 24:00 allowed
//	ymd   "YYYY-MM-DD" calendar date
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", isHHMM); err != nil {
		return err
	}
	return v.RegisterValidation("ymd", isYMD)
}

func isHHMM(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := schedule.TimeToMinutes(s)
	return err == nil
}

func isYMD(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
