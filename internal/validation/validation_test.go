package validation

import (
	"reflect"
	"strings"
	"testing"
)

type pageRequest struct {
	PageNumber int32 `validate:"gt=0"`
	PageSize   int32 `validate:"gt=0,lte=100"`
}

type signupRequest struct {
	Email    string `validate:"required,email"`
	LastName string `validate:"required,max=100"`
	Password string `validate:"required,min=8"`
}

func TestMessagesValid(t *testing.T) {
	if msgs := Messages(pageRequest{PageNumber: 1, PageSize: 10}); msgs != nil {
		t.Fatalf("expected no violations, got %v", msgs)
	}
}

func TestMessagesFieldOrder(t *testing.T) {
	msgs := Messages(pageRequest{PageNumber: 0, PageSize: 0})
	want := []string{
		"PageNumber must be greater than 0",
		"PageSize must be greater than 0",
	}
	if !reflect.DeepEqual(msgs, want) {
		t.Fatalf("got %v, want %v", msgs, want)
	}
}

func TestMessagesWording(t *testing.T) {
	tests := []struct {
		name string
		req  any
		want []string
	}{
		{
			name: "page size over cap",
			req:  pageRequest{PageNumber: 1, PageSize: 101},
			want: []string{"PageSize cannot exceed 100"},
		},
		{
			name: "missing everything",
			req:  signupRequest{},
			want: []string{
				"Email is required",
				"LastName is required",
				"Password is required",
			},
		},
		{
			name: "over-long field",
			req:  signupRequest{Email: "a@b.com", LastName: strings.Repeat("x", 101), Password: "longenough"},
			want: []string{"LastName cannot exceed 100 characters"},
		},
		{
			name: "malformed email and short password",
			req:  signupRequest{Email: "not-an-address", LastName: "Doe", Password: "short"},
			want: []string{
				"Email must be a well-formed address",
				"Password must be at least 8 characters",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Messages(tt.req); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
