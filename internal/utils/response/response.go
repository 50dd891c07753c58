// Package response provides helpers for writing consistent output back to
// the user of either console program.
//
// Both programs print tables (records, students, query results) and, for
// the SQL wrapper's --json mode, JSON documents. Rather than repeating the
// formatting in every command we centralise it here, so the same record
// always looks the same wherever it is shown.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the envelope written in JSON mode for command outcomes that
// have no natural body (errors, mutations).
//
//	{ "status": "error", "error": "update-student-email: no student with id 7" }
//	{ "status": "ok", "id": 4 }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	ID           int64  `json:"id,omitempty"`
	RowsAffected int64  `json:"rows_affected,omitempty"`
}

// Status string constants. Use these instead of raw string literals so
// a typo is caught by the compiler rather than silently printing "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// OK returns a success Response. id and rowsAffected are omitted when zero.
func OK(id, rowsAffected int64) Response {
	return Response{Status: StatusOK, ID: id, RowsAffected: rowsAffected}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationMessage converts the field errors reported by
// go-playground/validator into one human-readable sentence.
//
// Example output:
//
//	field Name is required, field Age must be at least 16
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationMessage(errs validator.ValidationErrors) string {
	var msgs []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(msgs, ", ")
}
