package validation

import (
	"fmt"
	"reflect"
	"sort"
)

// Error lists every field that failed validation together with its message.
type Error struct {
	Fields map[string]string
	order  []string
}

// NewError builds an Error for a single field.
// It is used when a rule is only decidable after binding, e.g. wrong credentials.
func NewError(field, message string) *Error {
	e := &Error{Fields: map[string]string{}}
	e.add(field, message)
	return e
}

func (e *Error) add(field, message string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
	e.order = append(e.order, field)
}

// sort orders the fields as they are declared in the DTO.
func (e *Error) sort(t reflect.Type) {
	pos := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		pos[jsonName(t.Field(i))] = i
	}
	sort.SliceStable(e.order, func(a, b int) bool {
		return pos[e.order[a]] < pos[e.order[b]]
	})
}

// Error returns the message of the first failing field.
func (e *Error) Error() string {
	if len(e.order) == 0 {
		return "validation failed"
	}
	return e.Fields[e.order[0]]
}

// Response is the JSON body sent with 422 Unprocessable Entity.
type Response struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Response renders e as an HTTP response body.
func (e *Error) Response() Response {
	msg := e.Error()
	switch extra := len(e.order) - 1; {
	case extra == 1:
		msg = fmt.Sprintf("%s (and 1 more error)", msg)
	case extra > 1:
		msg = fmt.Sprintf("%s (and %d more errors)", msg, extra)
	}
	return Response{Message: msg, Errors: e.Fields}
}
