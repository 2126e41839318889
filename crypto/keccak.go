package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// SelectorLength is the number of leading keccak bytes that identify a contract function.
const SelectorLength = 4

// Keccak256 hashes the concatenation of the inputs with the legacy (pre-NIST) keccak used by EVM chains.
func Keccak256(data ...[]byte) []byte {
	hash := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hash.Write(d)
	}
	return hash.Sum(nil)
}

// Selector returns the 4 byte function selector of a canonical signature, ex. "transfer(address,uint256)".
// No canonicalization happens here.
func Selector(canonicalSignature string) []byte {
	return Keccak256([]byte(canonicalSignature))[:SelectorLength]
}

func SelectorHex(canonicalSignature string) string {
	return hex.EncodeToString(Selector(canonicalSignature))
}
