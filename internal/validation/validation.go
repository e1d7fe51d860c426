// Package validation applies explicit, composable rules to request fields
// and reports every violation with a translated message.
package validation

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"todolist/internal/i18n"
)

var validate = validator.New()

type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is returned when at least one rule failed.
type Errors struct {
	Violations []Violation
}

func (e *Errors) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *Errors) Messages() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Message)
	}
	return out
}

// CheckFunc reports whether value satisfies the rule. A non-nil error means
// the check itself could not run.
type CheckFunc func(ctx context.Context, value any) (bool, error)

type Rule struct {
	Name  string
	Key   string
	Args  i18n.Args
	Check CheckFunc
}

type Field struct {
	Name  string
	Value any
	Rules []Rule
}

func F(name string, value any, rules ...Rule) Field {
	return Field{Name: name, Value: value, Rules: rules}
}

// Validate runs every rule of every field in order.
func Validate(ctx context.Context, tr i18n.Translator, fields ...Field) error {
	var violations []Violation
	for _, f := range fields {
		for _, r := range f.Rules {
			ok, err := r.Check(ctx, f.Value)
			if err != nil {
				return fmt.Errorf("validate %s (%s): %w", f.Name, r.Name, err)
			}
			if ok {
				continue
			}
			args := i18n.Args{"field": f.Name, "value": f.Value}
			for k, v := range r.Args {
				args[k] = v
			}
			violations = append(violations, Violation{
				Field:   f.Name,
				Rule:    r.Name,
				Message: tr.T(r.Key, args),
			})
		}
	}
	if len(violations) > 0 {
		return &Errors{Violations: violations}
	}
	return nil
}

// kinds groups the value kinds a validator tag can be applied to. Tags
// such as min or oneof panic on anything else, so values of other kinds
// fail the rule without reaching the validator.
type kinds uint8

const (
	kindString kinds = 1 << iota
	kindInt
	kindFloat

	kindNumber = kindInt | kindFloat
	kindScalar = kindString | kindNumber
)

func kindOf(value any) kinds {
	switch reflect.ValueOf(value).Kind() {
	case reflect.String:
		return kindString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return kindInt
	case reflect.Float32, reflect.Float64:
		return kindFloat
	}
	return 0
}

func tagRule(name, key, tag string, accepts kinds, args i18n.Args) Rule {
	return Rule{
		Name: name,
		Key:  key,
		Args: args,
		Check: func(_ context.Context, value any) (bool, error) {
			if kindOf(value)&accepts == 0 {
				return false, nil
			}
			return validate.Var(value, tag) == nil, nil
		},
	}
}

func IsString() Rule {
	return Rule{
		Name: "is_string",
		Key:  "validation.is_string",
		Check: func(_ context.Context, value any) (bool, error) {
			_, ok := value.(string)
			return ok, nil
		},
	}
}

func NotEmpty() Rule {
	return Rule{
		Name: "is_not_empty",
		Key:  "validation.is_not_empty",
		Check: func(_ context.Context, value any) (bool, error) {
			if value == nil {
				return false, nil
			}
			if s, ok := value.(string); ok {
				return strings.TrimSpace(s) != "", nil
			}
			return validate.Var(value, "required") == nil, nil
		},
	}
}

// MinLength and MaxLength count characters; non-string values fail.
func MinLength(n int) Rule {
	return tagRule("min_length", "validation.min_length", "min="+strconv.Itoa(n), kindString, i18n.Args{"min": n})
}

func MaxLength(n int) Rule {
	return tagRule("max_length", "validation.max_length", "max="+strconv.Itoa(n), kindString, i18n.Args{"max": n})
}

func IsEmail() Rule {
	return tagRule("is_email", "validation.is_email", "email", kindString, nil)
}

func GreaterThanZero() Rule {
	return tagRule("is_greater_than_zero", "validation.is_greater_than_zero", "gt=0", kindNumber, nil)
}

func IsNumber() Rule {
	return Rule{
		Name: "is_number",
		Key:  "validation.is_number",
		Check: func(_ context.Context, value any) (bool, error) {
			return kindOf(value)&kindNumber != 0, nil
		},
	}
}

// Match requires the field to equal another field's value. Only strings
// and numbers can match.
func Match(otherName string, otherValue any) Rule {
	return Rule{
		Name: "match",
		Key:  "validation.match",
		Args: i18n.Args{"other": otherName},
		Check: func(_ context.Context, value any) (bool, error) {
			if kindOf(value)&kindScalar == 0 || kindOf(otherValue)&kindScalar == 0 {
				return false, nil
			}
			return validate.VarWithValue(value, otherValue, "eqcsfield") == nil, nil
		},
	}
}

func OneOf(values ...string) Rule {
	return tagRule("is_enum", "validation.is_enum", "oneof="+strings.Join(values, " "), kindString|kindInt,
		i18n.Args{"values": strings.Join(values, ", ")})
}

// ExistenceChecker answers whether a row with column = value exists in table.
type ExistenceChecker interface {
	Exists(ctx context.Context, table, column string, value any) (bool, error)
}

// DontExist fails when the value is already stored in table.column. Values
// that are not strings or numbers are never looked up; their type is
// reported by the type rules of the field.
func DontExist(checker ExistenceChecker, table, column string) Rule {
	return Rule{
		Name: "dont_exists",
		Key:  "validation.dont_exists",
		Check: func(ctx context.Context, value any) (bool, error) {
			if kindOf(value)&kindScalar == 0 {
				return true, nil
			}
			found, err := checker.Exists(ctx, table, column, value)
			if err != nil {
				return false, err
			}
			return !found, nil
		},
	}
}

// ParamError reports a path or query parameter that failed to parse.
type ParamError struct {
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("Validation failed (numeric string is expected). Param %s (%s)", e.Param, e.Value)
}

// ParseSafeInt parses a decimal parameter whose magnitude fits in 53 bits.
func ParseSafeInt(param, raw string) (int64, error) {
	const maxSafe = 1<<53 - 1
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n > maxSafe || n < -maxSafe {
		return 0, &ParamError{Param: param, Value: raw}
	}
	return n, nil
}
