package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"interest-registry/internal/subscription/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

type SubscribeRequest struct {
	ExpoToken   string `json:"expo_token" validate:"required"`
	SellerToken string `json:"seller_token" validate:"required"`
}

// UnsubscribeRequest removes the given expo token, or every token for the
// interest when ExpoToken is nil.
type UnsubscribeRequest struct {
	SellerToken string  `json:"seller_token" validate:"required"`
	ExpoToken   *string `json:"expo_token" validate:"omitnil,min=1"`
}

func (r *SubscribeRequest) Validate() error {
	return validateStruct(r)
}

func (r *UnsubscribeRequest) Validate() error {
	return validateStruct(r)
}

type SubscribeResponse struct {
	Status    string `json:"status"`
	ExpoToken string `json:"expo_token"`
}

type UnsubscribeResponse struct {
	Deleted int64 `json:"deleted"`
}

type ErrorBody struct {
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

type ErrorResponse struct {
	Status string    `json:"status"`
	Error  ErrorBody `json:"error"`
}

type SubscriptionListResponse struct {
	Interest      domain.Interest       `json:"interest"`
	Subscriptions []domain.Subscription `json:"subscriptions"`
	Count         int                   `json:"count"`
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ValidationError{Fields: []domain.FieldError{{Message: err.Error()}}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
