package coding

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func Has0xPrefix(in string) bool {
	return strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X")
}

// StripHexPrefix removes a leading 0x / 0X marker, if present.
func StripHexPrefix(in string) string {
	if Has0xPrefix(in) {
		return in[2:]
	}
	return in
}

func DecodeHex(in string) ([]byte, error) {
	return hex.DecodeString(StripHexPrefix(in))
}

// NormalizeHexString validates a hex payload and returns it lower-cased with a 0x marker.
// An empty payload (ex. "" or "0x") normalizes to "0x".
func NormalizeHexString(in string) (string, error) {
	decoded, err := DecodeHex(strings.TrimSpace(in))
	if err != nil {
		return "", fmt.Errorf("invalid hex string %q: %w", in, err)
	}
	return NormalizeBytesToHex(decoded), nil
}

func NormalizeBytesToHex(input []byte) string {
	return hexutil.Encode(input)
}

// PayloadFingerprint pretty prints a hex payload in an identifiable and succint way.
func PayloadFingerprint(payload []byte) string {
	if len(payload) <= 8 {
		return NormalizeMaybeEmptyBytes(payload)
	}

	return fmt.Sprintf("[%s...%s]", hex.EncodeToString(payload[0:4]), hex.EncodeToString(payload[len(payload)-4:]))
}

// Returns an empty byte slice rather than no output for empty byte arrays
func NormalizeMaybeEmptyBytes(bytes []byte) string {
	if len(bytes) > 0 {
		return hex.EncodeToString(bytes)
	}
	return "[]"
}
