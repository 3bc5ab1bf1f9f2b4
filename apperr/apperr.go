// Package apperr defines the stable error vocabulary of the API. Every
// user-visible failure carries a machine-readable kind alongside the message,
// so clients can branch on more than the HTTP status.
package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind identifies a failure class across the whole API surface.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotFound           Kind = "not_found"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindNoProfile          Kind = "no_profile"
	KindSoldOut            Kind = "sold_out"
	KindAlreadyUsed        Kind = "already_used"
	KindExpired            Kind = "expired"
	KindRejected           Kind = "rejected"
	KindForbidden          Kind = "forbidden"
	KindAccountPending     Kind = "account_pending"
	KindInternal           Kind = "internal"
)

// httpStatus maps each kind to its wire status. Conflict-style failures
// (duplicate email, sold out, already used) stay at 400 to match the mobile
// client's existing contract.
var httpStatus = map[Kind]int{
	KindValidation:         http.StatusBadRequest,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindNotFound:           http.StatusNotFound,
	KindDuplicateEmail:     http.StatusBadRequest,
	KindNoProfile:          http.StatusNotFound,
	KindSoldOut:            http.StatusBadRequest,
	KindAlreadyUsed:        http.StatusBadRequest,
	KindExpired:            http.StatusBadRequest,
	KindRejected:           http.StatusBadRequest,
	KindForbidden:          http.StatusForbidden,
	KindAccountPending:     http.StatusForbidden,
	KindInternal:           http.StatusInternalServerError,
}

// Error is a kinded application error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status the error maps to.
func (e *Error) Status() int {
	if s, ok := httpStatus[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New builds an application error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Respond writes the error as the standard JSON failure payload.
func Respond(c *gin.Context, e *Error) {
	c.JSON(e.Status(), gin.H{
		"success": false,
		"error":   e.Kind,
		"message": e.Message,
	})
}
