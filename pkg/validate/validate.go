// Package validate provides struct-tag validation for request inputs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	digits=N            exactly N decimal digits
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Email    string  `json:"email"    validate:"required,email"`
//	    Password string  `json:"password" validate:"required,min=8"`
//	    Price    float64 `json:"price"    validate:"required,gt=0"`
//	    Role     string  `json:"role"     validate:"required,in=user,shop"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRE  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRE = regexp.MustCompile(`^[0-9]+$`)
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		// If `nullable` is present and the field is empty, skip all rules.
		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, field string, v reflect.Value) string {
	raw := fmt.Sprintf("%v", v.Interface())
	key, param, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}

	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}

	case "numeric":
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return fmt.Sprintf("The %s must be a number.", field)
		}

	case "min":
		if failsBound(v, raw, param, func(a, b float64) bool { return a < b }) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}

	case "max":
		if failsBound(v, raw, param, func(a, b float64) bool { return a > b }) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}

	case "gt":
		n, err1 := strconv.ParseFloat(raw, 64)
		bound, err2 := strconv.ParseFloat(param, 64)
		if err1 != nil || err2 != nil || n <= bound {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}

	case "digits":
		want, _ := strconv.Atoi(param)
		if !digitsRE.MatchString(raw) || len(raw) != want {
			return fmt.Sprintf("The %s must be %s digits.", field, param)
		}

	case "in":
		for _, allowed := range strings.Split(param, ",") {
			if raw == allowed {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

// failsBound applies min/max. Strings compare by length, numbers by value.
func failsBound(v reflect.Value, raw, param string, fails func(a, b float64) bool) bool {
	bound, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}

	switch v.Kind() {
	case reflect.String:
		return fails(float64(len(v.String())), bound)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fails(float64(v.Int()), bound)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fails(float64(v.Uint()), bound)
	case reflect.Float32, reflect.Float64:
		return fails(v.Float(), bound)
	default:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false
		}
		return fails(n, bound)
	}
}

func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")

	// Re-join the value list of an `in=` rule, which itself contains commas.
	var rules []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(rules) > 0 && strings.HasPrefix(rules[len(rules)-1], "in=") && !strings.Contains(p, "=") {
			rules[len(rules)-1] += "," + p
			continue
		}
		rules = append(rules, p)
	}
	return rules
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
