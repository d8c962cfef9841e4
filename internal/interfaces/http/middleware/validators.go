package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"careconnect.backend/internal/domain/entities"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request payloads:
// hhmm (24h "15:04"), isodate ("2006-01-02") and booking_status.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		for tag, fn := range map[string]validator.Func{
			"hhmm":           layoutValidator("15:04"),
			"isodate":        layoutValidator("2006-01-02"),
			"booking_status": validBookingStatus,
		} {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != len(layout) {
			return false
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}

func validBookingStatus(fl validator.FieldLevel) bool {
	return entities.BookingStatus(fl.Field().String()).Valid()
}
