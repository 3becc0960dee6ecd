package controllers

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/daie-pos/models"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator about decimal amounts and the
// domain enums. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
		_ = v.RegisterValidation("tablestate", func(fl validator.FieldLevel) bool {
			return models.ValidTableState(fl.Field().String())
		})
		_ = v.RegisterValidation("sessionstatus", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == models.SessionOpen || s == models.SessionClosed
		})
	})
}

// decimalValue exposes decimals to numeric tags such as gt=0.
func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}
