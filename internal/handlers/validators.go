package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("movementkind", func(fl validator.FieldLevel) bool {
		return domain.MovementKind(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("txnkind", func(fl validator.FieldLevel) bool {
		return domain.TransactionKind(fl.Field().String()).IsValid()
	})
}
