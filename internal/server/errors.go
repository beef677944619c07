// Package server provides the HTTP REST API for the enhancement service.
package server

import (
	"net/http"

	"github.com/Jmaradona/makeitshorter-sub000/internal/enhance"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Backend failures deliberately map to a plain 500 with the error's own
// generic retry message; the cause stays in the logs.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *enhance.ValidationError:
		return http.StatusBadRequest
	case *enhance.AuthRequiredError:
		return http.StatusUnauthorized
	case *enhance.PaymentRequiredError:
		return http.StatusPaymentRequired
	case *enhance.QuotaExhaustedError:
		return http.StatusTooManyRequests
	case *enhance.BackendError, *enhance.EmptyResponseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
