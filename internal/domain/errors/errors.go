package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrAlreadyRated       = errors.New("booking already rated")
	ErrAlreadyPaid        = errors.New("booking already paid")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrNotVerified        = errors.New("provider not fully verified")
	ErrBlacklisted        = errors.New("provider blacklisted")
	ErrRateLimited        = errors.New("too many requests")
)

// Error codes returned to API clients alongside the message
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyRegistered  = "ALREADY_REGISTERED"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeValidation         = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeAlreadyRated       = "ALREADY_RATED"
	CodeAlreadyPaid        = "ALREADY_PAID"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeInvalidSignature   = "INVALID_SIGNATURE"
	CodeNotVerified        = "PROVIDER_NOT_VERIFIED"
	CodeBlacklisted        = "PROVIDER_BLACKLISTED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeIdempotencyPending = "IDEMPOTENCY_IN_PROGRESS"
	CodeInternal           = "INTERNAL"
)

// AppError is an error classified for the HTTP boundary
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

type classification struct {
	target  error
	status  int
	code    string
	message string
}

// ordered: more specific sentinels first
var classifications = []classification{
	{ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password"},
	{ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired, "token has expired"},
	{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized, "authentication required"},
	{ErrForbidden, http.StatusForbidden, CodeForbidden, "you do not have access to this resource"},
	{ErrNotFound, http.StatusNotFound, CodeNotFound, "resource not found"},
	{ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists, "resource already exists"},
	{ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition, "invalid state transition"},
	{ErrAlreadyRated, http.StatusConflict, CodeAlreadyRated, "booking already rated"},
	{ErrAlreadyPaid, http.StatusConflict, CodeAlreadyPaid, "booking already paid"},
	{ErrConflict, http.StatusConflict, CodeConflict, "conflict"},
	{ErrInsufficientFunds, http.StatusBadRequest, CodeInsufficientFunds, "insufficient wallet balance"},
	{ErrInvalidSignature, http.StatusBadRequest, CodeInvalidSignature, "payment signature verification failed"},
	{ErrNotVerified, http.StatusForbidden, CodeNotVerified, "provider is not fully verified"},
	{ErrBlacklisted, http.StatusForbidden, CodeBlacklisted, "provider is blacklisted"},
	{ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited, "too many requests"},
	{ErrInvalidInput, http.StatusBadRequest, CodeValidation, "invalid input"},
	{ErrBadRequest, http.StatusBadRequest, CodeValidation, "bad request"},
}

// FromError classifies err into an AppError. An AppError anywhere in the chain
// wins; known sentinels map to their status and code; anything else is internal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, c := range classifications {
		if errors.Is(err, c.target) {
			return NewAppError(c.status, c.code, c.message, err)
		}
	}
	return InternalError(err)
}
