package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSize(t *testing.T) {
	for _, token := range SizeTokens {
		assert.True(t, IsValidSize(token), token)
	}

	for _, token := range []string{"", "s", "XXXL", "SM", "42"} {
		assert.False(t, IsValidSize(token), token)
	}
}

func TestIsValidWords(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		valid bool
	}{
		{"single word", "Shirt", true},
		{"two words", "Blue Shirt", true},
		{"leading space trimmed", "  Shirt", true},
		{"digits", "Shirt 2", false},
		{"punctuation", "Shirt!", false},
		{"empty", "", false},
		{"only spaces", "   ", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidWords(tc.value))
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	assert.True(t, IsValidObjectID("64f1c5f2a2b3c4d5e6f7a8b9"))
	assert.False(t, IsValidObjectID("not-an-id"))
	assert.False(t, IsValidObjectID("64f1c5f2a2b3c4d5e6f7a8"))
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		value string
		want  float64
		ok    bool
	}{
		{"100", 100, true},
		{" 99.5 ", 99.5, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		got, ok := ParsePrice(tc.value)
		assert.Equal(t, tc.ok, ok, tc.value)
		if ok {
			assert.Equal(t, tc.want, got, tc.value)
		}
	}
}

func TestParseBoolFlag(t *testing.T) {
	v, ok := ParseBoolFlag("true")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = ParseBoolFlag(" false ")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = ParseBoolFlag("yes")
	assert.False(t, ok)
}

func TestNormalizeSizes(t *testing.T) {
	sizes, err := NormalizeSizes("s, m ,XL,s")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "XL"}, sizes)

	_, err = NormalizeSizes("S,HUGE")
	require.Error(t, err)
	var fieldErr *ValidationError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "availableSizes", fieldErr.Field)
}

func TestIsValidPassword(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		valid bool
	}{
		{"good", "Passw0rd!", true},
		{"no upper", "passw0rd!", false},
		{"no digit", "Password!", false},
		{"no special", "Passw0rdd", false},
		{"too short", "Pa0!", false},
		{"too long", "Passw0rd!Passw0rd!", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidPassword(tc.value))
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.False(t, IsValidPhone("1234567890"))
	assert.False(t, IsValidPhone("98765"))
}

func TestStructValidation(t *testing.T) {
	v := NewValidation()

	errs := v.Validate(RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "Passw0rd!",
	})
	assert.Nil(t, errs)

	errs = v.Validate(RegisterInput{
		Name:     "Asha",
		Email:    "not-an-email",
		Phone:    "123",
		Password: "weak",
	})
	assert.Len(t, errs, 3)
}
