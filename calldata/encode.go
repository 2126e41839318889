// Package calldata encodes contract function calls into transaction data payloads.
package calldata

import (
	"encoding/hex"

	"github.com/tessellated-io/foresight/crypto"
)

// Encode produces the data payload of a call to the declared function: the 4 byte selector followed by the
// ABI packed arguments. The result is hex without a 0x marker.
//
// The signature is a single declaration such as "transfer(address,uint256)" or
// "transfer(address to, uint256 amount)". Either every argument encodes against its declared type or an
// *EncodingError is returned.
func Encode(signature string, args []any) (string, error) {
	payload, err := EncodeBytes(signature, args)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(payload), nil
}

// EncodeBytes is Encode without the hex rendering.
func EncodeBytes(signature string, args []any) ([]byte, error) {
	method, err := parseMethod(signature)
	if err != nil {
		return nil, err
	}

	if len(args) != len(method.Inputs) {
		return nil, mismatch(signature, "expected %d arguments, got %d", len(method.Inputs), len(args))
	}

	values := make([]any, len(args))
	for i, arg := range args {
		coerced, err := coerce(method.Inputs[i].Type, arg)
		if err != nil {
			return nil, mismatch(signature, "argument %d: %v", i, err)
		}
		values[i] = coerced.Interface()
	}

	packed, err := method.Inputs.Pack(values...)
	if err != nil {
		return nil, mismatch(signature, "%v", err)
	}

	selector := crypto.Selector(method.Sig)
	payload := make([]byte, 0, len(selector)+len(packed))
	payload = append(payload, selector...)
	return append(payload, packed...), nil
}

// Selector returns the hex selector (no 0x marker) of a declaration, after canonicalization.
func Selector(signature string) (string, error) {
	canonical, err := Canonicalize(signature)
	if err != nil {
		return "", err
	}
	return crypto.SelectorHex(canonical), nil
}
