package simulation

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
	"github.com/tessellated-io/foresight/coding"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("wei", weiValidation)
	_ = validate.RegisterValidation("hexdata", hexDataValidation)

	// Report fields by their wire names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

// weiValidation accepts an empty string (treated as absent) or an unsigned 256 bit integer in decimal or 0x hex.
func weiValidation(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	_, err := ParseWei(raw)
	return err == nil
}

// hexDataValidation accepts an empty string (treated as absent) or an even length hex string.
func hexDataValidation(fl validator.FieldLevel) bool {
	_, err := coding.NormalizeHexString(fl.Field().String())
	return err == nil
}

// ParseWei parses an amount given in decimal or 0x-prefixed hex, rejecting negatives and anything above 2^256-1.
func ParseWei(raw string) (*uint256.Int, error) {
	trimmed := strings.TrimSpace(raw)
	if !coding.Has0xPrefix(trimmed) {
		return uint256.FromDecimal(trimmed)
	}

	digits := coding.StripHexPrefix(trimmed)
	parsed, ok := new(big.Int).SetString(digits, 16)
	if digits == "" || strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") || !ok {
		return nil, fmt.Errorf("invalid hex amount %q", raw)
	}
	amount, overflow := uint256.FromBig(parsed)
	if overflow {
		return nil, fmt.Errorf("amount %q overflows 256 bits", raw)
	}
	return amount, nil
}

func validateIntent(validate *validator.Validate, intent *TransactionIntent) error {
	if intent == nil {
		return fmt.Errorf("%w: no transaction provided", ErrInvalidIntent)
	}

	if err := validate.Struct(intent); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidIntent, describeValidationError(err))
	}

	// An explicitly empty gas price carries no meaning, unlike an explicit zero.
	if intent.GasPrice != nil && strings.TrimSpace(*intent.GasPrice) == "" {
		return fmt.Errorf("%w: gasPrice: must not be empty when provided", ErrInvalidIntent)
	}
	if intent.Function != nil && intent.Data != nil && *intent.Data != "" {
		return fmt.Errorf("%w: data and function are mutually exclusive", ErrInvalidIntent)
	}
	if intent.Function == nil && len(intent.Args) > 0 {
		return fmt.Errorf("%w: args given without a function", ErrInvalidIntent)
	}
	return nil
}

func validateConfig(validate *validator.Validate, config ProviderConfig) error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, describeValidationError(err))
	}
	return nil
}

func describeValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldError.Field(), msgForFieldError(fieldError)))
	}
	return strings.Join(messages, "; ")
}

func msgForFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "this field is required"
	case "eth_addr":
		return fmt.Sprintf("%q is not a 0x-prefixed 20 byte address", fieldError.Value())
	case "wei":
		return fmt.Sprintf("%q is not an unsigned 256 bit integer", fieldError.Value())
	case "hexdata":
		return fmt.Sprintf("%q is not a hex byte string", fieldError.Value())
	case "url":
		return fmt.Sprintf("%q is not a URL", fieldError.Value())
	default:
		return "invalid value"
	}
}
