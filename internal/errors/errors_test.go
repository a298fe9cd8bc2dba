package errors

import (
	"errors"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "error without cause",
			err: &APIError{
				Kind:    KindNotFound,
				Message: "prediction not found",
			},
			want: "prediction not found",
		},
		{
			name: "error with cause",
			err: &APIError{
				Kind:    KindNetwork,
				Message: "request failed",
				Cause:   errors.New("connection refused"),
			},
			want: "request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &APIError{
		Kind:    KindNetwork,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("APIError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestAPIError_WithStatus(t *testing.T) {
	base := ServerInternal("analysis service is down")
	annotated := base.WithStatus(503)

	if annotated.HTTPStatus != 503 {
		t.Errorf("WithStatus().HTTPStatus = %v, want %v", annotated.HTTPStatus, 503)
	}
	if annotated.Kind != KindServerInternal {
		t.Errorf("WithStatus().Kind = %v, want %v", annotated.Kind, KindServerInternal)
	}
	if base.HTTPStatus != 0 {
		t.Errorf("WithStatus() mutated receiver, HTTPStatus = %v, want 0", base.HTTPStatus)
	}
}

func TestTimeout(t *testing.T) {
	err := Timeout("request timed out")
	if err.Kind != KindTimeout {
		t.Errorf("Timeout().Kind = %v, want %v", err.Kind, KindTimeout)
	}
	if err.Message != "request timed out" {
		t.Errorf("Timeout().Message = %v, want %v", err.Message, "request timed out")
	}
}

func TestNetwork(t *testing.T) {
	err := Network("connection failed")
	if err.Kind != KindNetwork {
		t.Errorf("Network().Kind = %v, want %v", err.Kind, KindNetwork)
	}
	if err.Message != "connection failed" {
		t.Errorf("Network().Message = %v, want %v", err.Message, "connection failed")
	}
}

func TestAuthRequired(t *testing.T) {
	err := AuthRequired("token missing")
	if err.Kind != KindAuthRequired {
		t.Errorf("AuthRequired().Kind = %v, want %v", err.Kind, KindAuthRequired)
	}
	if err.Message != "token missing" {
		t.Errorf("AuthRequired().Message = %v, want %v", err.Message, "token missing")
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("prediction %s not found", "p-42")
	if err.Kind != KindNotFound {
		t.Errorf("NotFoundf().Kind = %v, want %v", err.Kind, KindNotFound)
	}
	if err.Message != "prediction p-42 not found" {
		t.Errorf("NotFoundf().Message = %v, want %v", err.Message, "prediction p-42 not found")
	}
}

func TestServerInternal(t *testing.T) {
	err := ServerInternal("internal server error")
	if err.Kind != KindServerInternal {
		t.Errorf("ServerInternal().Kind = %v, want %v", err.Kind, KindServerInternal)
	}
	if err.Message != "internal server error" {
		t.Errorf("ServerInternal().Message = %v, want %v", err.Message, "internal server error")
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("amount", "missing required field")
	if err.Kind != KindValidation {
		t.Errorf("ValidationField().Kind = %v, want %v", err.Kind, KindValidation)
	}
	if err.Field != "amount" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "amount")
	}
	if err.Message != "missing required field" {
		t.Errorf("ValidationField().Message = %v, want %v", err.Message, "missing required field")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, KindNetwork, "wrapped error")

	if err.Kind != KindNetwork {
		t.Errorf("Wrap().Kind = %v, want %v", err.Kind, KindNetwork)
	}
	if err.Message != "wrapped error" {
		t.Errorf("Wrap().Message = %v, want %v", err.Message, "wrapped error")
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Wrap().Cause = %v, want %v", err.Cause, cause)
	}
}

func TestWrap_NilError(t *testing.T) {
	err := Wrap(nil, KindNetwork, "wrapped error")
	if err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestWrapf_NilError(t *testing.T) {
	err := Wrapf(nil, KindUnknown, "wrapped %s", "error")
	if err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "not found error",
			err:  NotFound("prediction not found"),
			want: true,
		},
		{
			name: "other error",
			err:  Timeout("timed out"),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsServerInternal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "server internal error",
			err:  ServerInternal("boom"),
			want: true,
		},
		{
			name: "wrapped server internal error",
			err:  Wrap(ServerInternal("boom"), KindUnknown, "outer"),
			want: true,
		},
		{
			name: "other error",
			err:  NotFound("not found"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsServerInternal(tt.err); got != tt.want {
				t.Errorf("IsServerInternal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "timeout error",
			err:  Timeout("timed out"),
			want: true,
		},
		{
			name: "other error",
			err:  Network("connection failed"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInsufficientBalance(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "payment required status",
			err:  Unknown("Недостаточно средств").WithStatus(402),
			want: true,
		},
		{
			name: "other status",
			err:  Validation("bad input").WithStatus(422),
			want: false,
		},
		{
			name: "no status",
			err:  Unknown("unexplained"),
			want: false,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInsufficientBalance(tt.err); got != tt.want {
				t.Errorf("IsInsufficientBalance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "api error",
			err:  NotFound("not found"),
			want: KindNotFound,
		},
		{
			name: "wrapped api error",
			err:  Wrap(Timeout("timed out"), KindUnknown, "outer"),
			want: KindUnknown,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: KindUnknown,
		},
		{
			name: "nil error",
			err:  nil,
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetKind(tt.err); got != tt.want {
				t.Errorf("GetKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "error with status",
			err:  ServerInternal("boom").WithStatus(500),
			want: 500,
		},
		{
			name: "error without status",
			err:  Network("connection failed"),
			want: 0,
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: 0,
		},
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetStatus(tt.err); got != tt.want {
				t.Errorf("GetStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation field error",
			err:  ValidationField("origin_account", "missing required field"),
			want: "origin_account",
		},
		{
			name: "error without field",
			err:  NotFound("not found"),
			want: "",
		},
		{
			name: "standard error",
			err:  errors.New("standard error"),
			want: "",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetField(tt.err); got != tt.want {
				t.Errorf("GetField() = %v, want %v", got, tt.want)
			}
		})
	}
}
