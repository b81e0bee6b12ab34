package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SizeTokens is the fixed set of legal availableSizes values.
var SizeTokens = []string{"S", "XS", "M", "X", "L", "XXL", "XL"}

var (
	wordsRe    = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)
	phoneRe    = regexp.MustCompile(`^[6-9]\d{9}$`)
	passwordRe = regexp.MustCompile(`^[\x21-\x7e]{8,15}$`)
)

// Blank reports whether s is empty or whitespace-only. Field absence is
// modeled separately with nil pointers, so callers never have to guess
// between "absent" and "blank".
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidObjectID reports whether s is a 24-hex-character document id.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// IsValidSize reports whether the token is a member of SizeTokens.
func IsValidSize(token string) bool {
	for _, t := range SizeTokens {
		if t == token {
			return true
		}
	}
	return false
}

// IsValidWords reports whether s is one or more alphabetic words
// separated by single spaces. Used where a human-readable label is
// expected (title, style).
func IsValidWords(s string) bool {
	return wordsRe.MatchString(strings.TrimSpace(s))
}

// ParsePrice parses s as a positive number.
func ParsePrice(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParsePositiveInt parses s as a positive whole number.
func ParsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseBoolFlag parses the boolean-as-string flags carried by form
// bodies; only the literals "true" and "false" are accepted.
func ParseBoolFlag(s string) (bool, bool) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// NormalizeSizes splits a comma-separated size list, trims and uppercases
// each token and drops duplicates. It fails on the first token outside
// SizeTokens.
func NormalizeSizes(s string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, raw := range strings.Split(s, ",") {
		token := strings.ToUpper(strings.TrimSpace(raw))
		if !IsValidSize(token) {
			return nil, Invalidf("availableSizes",
				"sizes must be one of %s", strings.Join(SizeTokens, ", "))
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out, nil
}

// IsValidPhone reports whether s is a ten-digit Indian mobile number.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsValidPassword checks the registration password policy: 8 to 15
// printable characters with at least one upper, one lower, one digit and
// one special character.
func IsValidPassword(s string) bool {
	if !passwordRe.MatchString(s) {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// ValidationErrors is a collection of per-field failures produced by
// struct validation of JSON bodies.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, v := range ve {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validation wraps the go-playground validator so the rest of the code
// never deals with its error types directly.
type Validation struct {
	validate *validator.Validate
}

// NewValidation creates a Validation with the custom phone and password
// tags registered.
func NewValidation() *Validation {
	v := validator.New()
	v.RegisterValidation("inphone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return IsValidPassword(fl.Field().String())
	})
	return &Validation{validate: v}
}

// Validate checks the struct tags of i and converts any failures into
// ValidationErrors.
func (v *Validation) Validate(i interface{}) ValidationErrors {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var out ValidationErrors
	for _, fe := range err.(validator.ValidationErrors) {
		out = append(out, &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' tag", fe.Tag()),
		})
	}
	return out
}
