package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxBodyBytes = 1 << 20

// RequestError is a client error detected before the store is touched.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func BadRequest(format string, args ...any) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unprocessable(format string, args ...any) *RequestError {
	return &RequestError{Status: http.StatusUnprocessableEntity, Message: fmt.Sprintf(format, args...)}
}

// StatusOf maps an error to the HTTP status it should produce.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return http.StatusInternalServerError
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// DecodeJSON reads exactly one JSON value from the request body. Syntax errors
// and trailing input are reported as 400, type mismatches and bad field
// values as 422.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return BadRequest("request body is empty")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return BadRequest("malformed JSON body: %v", err)
		case errors.As(err, &typeErr):
			return Unprocessable("field %q must be of type %s", typeErr.Field, typeErr.Type)
		default:
			return Unprocessable("%v", err)
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return BadRequest("request body must contain a single JSON object")
	}
	return nil
}

// QueryInt parses an optional integer query parameter bounded to [minVal, maxVal].
func QueryInt(r *http.Request, name string, def, minVal, maxVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Unprocessable("%s must be an integer", name)
	}
	if n < minVal || n > maxVal {
		return 0, Unprocessable("%s must be between %d and %d", name, minVal, maxVal)
	}
	return n, nil
}

// QueryString returns the trimmed parameter or def when it is absent.
func QueryString(r *http.Request, name, def string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return def
}

// CheckLength validates a text field measured in characters.
func CheckLength(field, value string, minLen, maxLen int) error {
	if !utf8.ValidString(value) {
		return Unprocessable("%s must be valid UTF-8", field)
	}
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return Unprocessable("%s must be between %d and %d characters", field, minLen, maxLen)
	}
	return nil
}
