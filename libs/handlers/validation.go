package handlers

import (
	"context"
	"reflect"

	"github.com/asaskevich/govalidator"
	errorutils "github.com/brave-intl/restpipe/libs/errors"
	"github.com/brave-intl/restpipe/libs/responses"
	// registers the custom struct tags
	_ "github.com/brave-intl/restpipe/libs/validators"
)

// ContractValidator is implemented by requests with checks beyond their struct tags
type ContractValidator interface {
	ValidationErrors(ctx context.Context) []responses.ErrorInfo
}

type selfValidator interface {
	Validate(context.Context) error
}

// ValidateRequest runs every pre-handler check on a request. Parse errors take
// precedence and are the only details reported when present. A missing request
// reports NULL_REQUEST, otherwise the struct tags, Validate and ValidationErrors
// of the request are all consulted. Nil means the request may proceed.
func ValidateRequest(ctx context.Context, parseErrs []error, req interface{}) *ValidationFailure {
	var details []responses.ErrorInfo

	for _, err := range parseErrs {
		if err != nil {
			details = append(details, responses.ErrorInfo{Message: err.Error(), Reason: ReasonParseError})
		}
	}
	if len(details) > 0 {
		return &ValidationFailure{Details: details}
	}

	if isNil(req) {
		return &ValidationFailure{Details: []responses.ErrorInfo{{
			Message: errorutils.ErrNullRequest.Error(),
			Reason:  ReasonNullRequest,
		}}}
	}

	if isStruct(req) {
		if _, err := govalidator.ValidateStruct(req); err != nil {
			details = append(details, contractDetails(err)...)
		}
	}
	if v, ok := req.(selfValidator); ok {
		details = append(details, contractDetails(v.Validate(ctx))...)
	}
	if v, ok := req.(ContractValidator); ok {
		details = append(details, v.ValidationErrors(ctx)...)
	}

	if len(details) > 0 {
		return &ValidationFailure{Details: details}
	}
	return nil
}

func contractDetails(err error) []responses.ErrorInfo {
	var details []responses.ErrorInfo
	for _, e := range errorutils.Flatten(err) {
		details = append(details, responses.ErrorInfo{Message: e.Error(), Reason: ReasonValidationError})
	}
	return details
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isStruct(v interface{}) bool {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
