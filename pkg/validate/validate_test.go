package validate_test

import (
	"testing"

	"github.com/drovo/backend/pkg/validate"
)

type signupInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=50"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"     validate:"required,in=user,shop"`
	Price    float64 `json:"price"    validate:"nullable,gt=0"`
	OTP      string  `json:"otp"      validate:"nullable,digits=6"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "shop",
		Price:    49.5,
		OTP:      "123456",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"name", "email", "password", "role"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("valid email rejected: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=user,shop"`
	}
	if errs := validate.Struct(in{Role: "admin"}); !validate.HasErrors(errs) {
		t.Error("expected role outside the set to fail")
	}
	if errs := validate.Struct(in{Role: "user"}); validate.HasErrors(errs) {
		t.Errorf("valid role rejected: %v", errs)
	}
}

func TestDigitsRule(t *testing.T) {
	type in struct {
		OTP string `json:"otp" validate:"required,digits=6"`
	}
	if errs := validate.Struct(in{OTP: "12345"}); !validate.HasErrors(errs) {
		t.Error("expected 5 digits to fail")
	}
	if errs := validate.Struct(in{OTP: "12345a"}); !validate.HasErrors(errs) {
		t.Error("expected non-digit to fail")
	}
	if errs := validate.Struct(in{OTP: "123456"}); validate.HasErrors(errs) {
		t.Errorf("valid otp rejected: %v", errs)
	}
}

func TestGtRule(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Price: -5}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 120}); validate.HasErrors(errs) {
		t.Errorf("valid price rejected: %v", errs)
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	type in struct {
		OTP string `json:"otp" validate:"nullable,digits=6"`
	}
	if errs := validate.Struct(in{}); validate.HasErrors(errs) {
		t.Errorf("empty nullable field rejected: %v", errs)
	}
}
