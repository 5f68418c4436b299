package handlers

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding validations. Called once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("15:04", fl.Field().String())
			return err == nil
		})
		v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
			_, err := time.Parse("2006-01-02", fl.Field().String())
			return err == nil
		})
	}
}
