package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcademicYear(t *testing.T) {
	cases := map[string]bool{
		"2024-2025": true,
		"1999-2000": true,
		"2024-2026": false,
		"2025-2024": false,
		"2024/2025": false,
		"24-25":     false,
		"":          false,
	}
	for in, want := range cases {
		assert.Equal(t, want, AcademicYear(in), in)
	}
}

func TestRegisterOnStructTag(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	type req struct {
		Year string `validate:"required,academic_year"`
	}
	assert.NoError(t, v.Struct(req{Year: "2023-2024"}))
	assert.Error(t, v.Struct(req{Year: "2023-2025"}))
}

func TestRegisterOnGinEngine(t *testing.T) {
	assert.NoError(t, Register())
}
