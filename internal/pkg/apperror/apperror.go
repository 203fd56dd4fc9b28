// Package apperror normalizes storage and token errors into the API error
// taxonomy. Every handler funnels failures through Translate before the
// response envelope is written.
package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is MySQL error 1062, a unique-key violation.
const mysqlDuplicateEntry = 1062

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicate
	KindValidation
	KindBadRequest
	KindUnauthorized
)

// Error is an application error with an HTTP-mappable kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate, KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Duplicate reports a unique-constraint violation on the named field.
func Duplicate(field string) *Error {
	return &Error{Kind: KindDuplicate, Message: "Duplicate value entered for field: " + field}
}

// Validation joins schema validation messages into a single error.
func Validation(messages ...string) *Error {
	return &Error{Kind: KindValidation, Message: strings.Join(messages, ", ")}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Translate maps any error to an *Error. Already-classified errors pass
// through; storage and token errors are recognized by type; everything else
// surfaces its raw message as a 500.
func Translate(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Resource not found")
	}

	// The driver error carries the violated key name; prefer it over the
	// bare gorm sentinel so the duplicate message can name the field.
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return Duplicate(duplicateField(myErr.Message))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyMessage(err) {
		return Duplicate(duplicateField(err.Error()))
	}

	if errors.Is(err, jwtlib.ErrTokenExpired) {
		return Unauthorized("Your token has expired, Please login again")
	}
	if errors.Is(err, jwtlib.ErrTokenMalformed) || errors.Is(err, jwtlib.ErrSignatureInvalid) ||
		errors.Is(err, jwtlib.ErrTokenUnverifiable) || errors.Is(err, jwtlib.ErrTokenSignatureInvalid) {
		return Unauthorized("Invalid token, Please Login again")
	}

	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// isDuplicateKeyMessage catches unique violations that surface as plain
// strings (SQLite UNIQUE constraint, re-stringified MySQL errors).
func isDuplicateKeyMessage(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// duplicateField extracts the violated column name from a driver message.
// Returns "unknown" when the message carries no key, which is the case for
// gorm's bare ErrDuplicatedKey sentinel.
func duplicateField(msg string) string {
	// SQLite: "UNIQUE constraint failed: users.email"
	if idx := strings.Index(msg, "UNIQUE constraint failed: "); idx >= 0 {
		rest := msg[idx+len("UNIQUE constraint failed: "):]
		if dot := strings.Index(rest, "."); dot >= 0 {
			return strings.TrimSpace(rest[dot+1:])
		}
		return strings.TrimSpace(rest)
	}
	// MySQL: "Duplicate entry 'x' for key 'users.idx_users_email'". The key
	// name follows gorm's <prefix>_<table>_<column> convention.
	if idx := strings.LastIndex(msg, "for key '"); idx >= 0 {
		key := strings.TrimSuffix(msg[idx+len("for key '"):], "'")
		table := ""
		if dot := strings.LastIndex(key, "."); dot >= 0 {
			table = key[:dot]
			key = key[dot+1:]
		}
		for _, prefix := range []string{"idx_", "uni_"} {
			key = strings.TrimPrefix(key, prefix)
		}
		if table != "" {
			key = strings.TrimPrefix(key, table+"_")
		}
		return key
	}
	return "unknown"
}
