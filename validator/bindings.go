package validator

import (
	"fmt"
	"time"

	"hotelbook/constants"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

// RegisterBindings đăng ký các tag tuỳ chỉnh cho binding của gin
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("isodate", isISODate); err != nil {
		return err
	}
	return v.RegisterValidation("usertype", isUserType)
}

func isISODate(fl playground.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(constants.DateLayout, value)
	return err == nil
}

func isUserType(fl playground.FieldLevel) bool {
	return ValidateUserType(fl.Field().String()) == nil
}
