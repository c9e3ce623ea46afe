package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationIssue describes one offending field of a request body
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the JSON name of a field
// instead of the Go struct field name
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

func validationIssues(err error) []ValidationIssue {
	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &fieldErrs):
		issues := make([]ValidationIssue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issues = append(issues, fieldIssue(fe))
		}
		return issues
	case errors.As(err, &typeErr):
		return []ValidationIssue{typeIssue(typeErr)}
	default:
		return []ValidationIssue{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	}
}

func fieldIssue(fe validator.FieldError) ValidationIssue {
	issue := ValidationIssue{Loc: []string{"body", fe.Field()}}

	switch fe.Tag() {
	case "required":
		issue.Msg = "Field required"
		issue.Type = "missing"
	case "oneof":
		issue.Msg = "Input should be " + strings.ReplaceAll(fe.Param(), " ", " or ")
		issue.Type = "literal_error"
	default:
		issue.Msg = "Failed on the '" + fe.Tag() + "' rule"
		issue.Type = "value_error"
	}
	return issue
}

func typeIssue(err *json.UnmarshalTypeError) ValidationIssue {
	if err.Field == "" {
		return ValidationIssue{
			Loc:  []string{"body"},
			Msg:  "Input should be a valid dictionary",
			Type: "model_attributes_type",
		}
	}

	loc := append([]string{"body"}, strings.Split(err.Field, ".")...)
	switch err.Type.Kind() {
	case reflect.String:
		return ValidationIssue{Loc: loc, Msg: "Input should be a valid string", Type: "string_type"}
	case reflect.Int, reflect.Int64:
		return ValidationIssue{Loc: loc, Msg: "Input should be a valid integer", Type: "int_type"}
	case reflect.Float64:
		return ValidationIssue{Loc: loc, Msg: "Input should be a valid number", Type: "float_type"}
	default:
		return ValidationIssue{Loc: loc, Msg: "Input has the wrong type", Type: "type_error"}
	}
}
