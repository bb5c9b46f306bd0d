package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100,single_line"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
	Subject string `json:"subject,omitempty" validate:"omitempty,min=5,max=200,single_line"`
}

func validForm() contactForm {
	return contactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello, I would like to connect about a project.",
	}
}

func fieldsOf(errs []FieldError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestStruct_Valid(t *testing.T) {
	errs, err := Struct(New(), validForm())
	require.NoError(t, err)
	assert.Nil(t, errs)
}

func TestStruct_FieldErrors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*contactForm)
		wantField  string
		wantReason string
	}{
		{"name too short", func(f *contactForm) { f.Name = "J" }, "name", "must be at least 2 characters"},
		{"name too long", func(f *contactForm) { f.Name = strings.Repeat("a", 101) }, "name", "must be at most 100 characters"},
		{"name missing", func(f *contactForm) { f.Name = "" }, "name", "is required"},
		{"name with newline", func(f *contactForm) { f.Name = "Jane\r\nBcc: x@y.z" }, "name", "must not contain line breaks"},
		{"message too short", func(f *contactForm) { f.Message = "hi" }, "message", "must be at least 10 characters"},
		{"message too long", func(f *contactForm) { f.Message = strings.Repeat("m", 5001) }, "message", "must be at most 5000 characters"},
		{"bad email", func(f *contactForm) { f.Email = "not-an-email" }, "email", "must be a valid email address"},
		{"subject too short", func(f *contactForm) { f.Subject = "Hey" }, "subject", "must be at least 5 characters"},
		{"subject too long", func(f *contactForm) { f.Subject = strings.Repeat("s", 201) }, "subject", "must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			errs, err := Struct(New(), form)
			require.NoError(t, err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantReason, errs[0].Reason)
		})
	}
}

func TestStruct_ReportsEveryField(t *testing.T) {
	form := contactForm{Name: "J", Email: "nope", Message: "short"}

	errs, err := Struct(New(), form)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"name", "email", "message"}, fieldsOf(errs))
}

func TestStruct_CountsCharactersNotBytes(t *testing.T) {
	form := validForm()
	form.Name = "李雷" // 2 runes, 6 bytes

	errs, err := Struct(New(), form)
	require.NoError(t, err)
	assert.Empty(t, errs)
}
