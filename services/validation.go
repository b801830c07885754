package services

import (
	"github.com/upb/casting-agency/utils"
)

// validate runs struct validation and converts failures into a validation
// DomainError carrying per-field messages.
func validate(req interface{}) error {
	err := utils.ValidateStruct(req)
	if err == nil {
		return nil
	}

	domainErr := NewDomainError(ErrInvalidInput.Type, ErrInvalidInput.Message, err)
	for field, msg := range utils.GetValidationFields(err) {
		domainErr = domainErr.WithDetail(field, msg)
	}
	return domainErr
}
