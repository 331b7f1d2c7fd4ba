// Package validation binds JSON request bodies and checks them against
// go-playground/validator rules declared in `binding` struct tags.
//
// Failures are reported per JSON field with human readable messages, and every
// failing field is listed in a single *Error.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrMalformedBody is returned when the request body is not a JSON object.
var ErrMalformedBody = errors.New("malformed JSON body")

// defaultMessages maps built-in validator tags to message templates.
// The first %s is the display name of the field, the second the tag parameter.
var defaultMessages = map[string]string{
	"required":  "The %s field is required.",
	"email":     "The %s field must be a valid email address.",
	"max":       "The %s field must not be greater than %s characters.",
	"min":       "The %s field must be at least %s characters.",
	"confirmed": "The %s field confirmation does not match.",
	"gt":        "The %s field must be greater than %s.",
}

// Validator validates request DTOs.
type Validator struct {
	v        *validator.Validate
	messages map[string]string
}

// New creates a Validator reading rules from `binding` tags and reporting
// fields by their `json` names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(jsonName)

	// confirmed: the field must equal its sibling "<Field>Confirmation".
	_ = v.RegisterValidation("confirmed", func(fl validator.FieldLevel) bool {
		other := fl.Parent().FieldByName(fl.StructFieldName() + "Confirmation")
		if !other.IsValid() || other.Kind() != reflect.String {
			return false
		}
		return fl.Field().String() == other.String()
	})

	messages := make(map[string]string, len(defaultMessages))
	for tag, msg := range defaultMessages {
		messages[tag] = msg
	}
	return &Validator{v: v, messages: messages}
}

// RegisterRule adds a context-aware rule usable as a `binding` tag.
// message is a template whose single %s receives the field display name.
func (v *Validator) RegisterRule(tag, message string, fn validator.FuncCtx) error {
	if err := v.v.RegisterValidationCtx(tag, fn); err != nil {
		return fmt.Errorf("register rule %q: %w", tag, err)
	}
	v.messages[tag] = message
	return nil
}

// BindJSON decodes the request body into dst (a pointer to a struct) and
// validates it. It returns ErrMalformedBody or an *Error.
func (v *Validator) BindJSON(c *gin.Context, dst any) error {
	raw, err := readObject(c.Request.Body)
	if err != nil {
		return err
	}
	return v.bind(c.Request.Context(), raw, dst)
}

func (v *Validator) bind(ctx context.Context, raw map[string]json.RawMessage, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation: dst must be a pointer to a struct, got %T", dst)
	}
	elem := rv.Elem()
	typ := elem.Type()

	verr := &Error{Fields: map[string]string{}}

	// Decode field by field so one wrongly typed value does not hide the others.
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		name := jsonName(sf)
		if name == "" || !sf.IsExported() {
			continue
		}
		val, ok := raw[name]
		if !ok || string(val) == "null" {
			continue
		}
		if err := json.Unmarshal(val, elem.Field(i).Addr().Interface()); err != nil {
			// Fields without rules are only read by other rules (e.g. confirmations).
			if sf.Tag.Get("binding") != "" {
				verr.add(name, typeMessage(name, sf.Type))
			}
			elem.Field(i).SetZero()
		}
	}

	if err := v.v.StructCtx(ctx, dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validation: %w", err)
		}
		for _, fe := range fieldErrs {
			if _, seen := verr.Fields[fe.Field()]; seen {
				continue
			}
			verr.add(fe.Field(), v.message(fe))
		}
	}

	if len(verr.order) == 0 {
		return nil
	}
	verr.sort(typ)
	return verr
}

func (v *Validator) message(fe validator.FieldError) string {
	tmpl, ok := v.messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("The %s field is invalid.", displayName(fe.Field()))
	}
	if strings.Count(tmpl, "%s") >= 2 {
		return fmt.Sprintf(tmpl, displayName(fe.Field()), fe.Param())
	}
	return fmt.Sprintf(tmpl, displayName(fe.Field()))
}

func readObject(body io.Reader) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if body == nil {
		return raw, nil
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrMalformedBody
	}
	return raw, nil
}

func typeMessage(name string, t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", displayName(name))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", displayName(name))
	case reflect.Bool:
		return fmt.Sprintf("The %s field must be true or false.", displayName(name))
	default:
		return fmt.Sprintf("The %s field is invalid.", displayName(name))
	}
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

// displayName turns "product_id" into "product id".
func displayName(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
