package util

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
)

// NumberToBigInt converts a JSON number into an integer. Fractional or exponent forms are rejected.
func NumberToBigInt(num json.Number) (*big.Int, error) {
	n, ok := new(big.Int).SetString(string(num), 10)
	if !ok {
		return nil, fmt.Errorf("unexpected non-integer value: %s", num)
	}
	return n, nil
}

// FloatToBigInt converts a float that came out of a JSON decode into an integer, provided it is integral
// and exactly representable.
func FloatToBigInt(num float64) (*big.Int, error) {
	if math.IsNaN(num) || math.IsInf(num, 0) || num != math.Trunc(num) {
		return nil, fmt.Errorf("unexpected non-integer value: %v", num)
	}
	if math.Abs(num) > 1<<53 {
		return nil, fmt.Errorf("value %v exceeds the exactly representable integer range, pass it as a string", num)
	}

	n, _ := new(big.Float).SetFloat64(num).Int(nil)
	return n, nil
}
