package httpHandler

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type RestStatus string

const (
	StatusSuccess RestStatus = "SUCCESS"
	StatusFailure RestStatus = "FAILURE"
)

type RestMessage string

const (
	MessageUserCreated        RestMessage = "USER_CREATED"
	MessageUserAlreadyExists  RestMessage = "USER_ALREADY_EXISTS"
	MessageUserInvalidInput   RestMessage = "USER_CREATION_INVALID_INPUT"
	MessageUserNotFound       RestMessage = "USER_NOT_FOUND"
	MessageSomethingWentWrong RestMessage = "SOMETHING_WENT_WRONG"
)

// ResponseWrapper is the envelope every non-paged response uses.
type ResponseWrapper struct {
	Status  RestStatus  `json:"status"`
	Message RestMessage `json:"message"`
	Data    any         `json:"data,omitempty"`
	Errors  any         `json:"errors,omitempty"`
}

// FieldValidationError describes one violated field in a 400 response.
type FieldValidationError struct {
	Field          string `json:"field"`
	FieldErrorCode string `json:"fieldErrorCode"`
	ErrorMessage   string `json:"errorMessage"`
}

func successResponse(message RestMessage, data any) ResponseWrapper {
	return ResponseWrapper{Status: StatusSuccess, Message: message, Data: data}
}

func failureResponse(message RestMessage) ResponseWrapper {
	return ResponseWrapper{Status: StatusFailure, Message: message}
}

func validationFailureResponse(message RestMessage, errs []FieldValidationError) ResponseWrapper {
	return ResponseWrapper{Status: StatusFailure, Message: message, Errors: errs}
}

// mapFieldErrors flattens every violation into the response payload; the
// client sees all failed fields at once, not just the first.
func mapFieldErrors(verr validator.ValidationErrors) []FieldValidationError {
	errs := make([]FieldValidationError, 0, len(verr))
	for _, fe := range verr {
		errs = append(errs, FieldValidationError{
			Field:          fe.Field(),
			FieldErrorCode: fe.Tag(),
			ErrorMessage:   fieldErrorMessage(fe),
		})
	}
	return errs
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
