package model

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes an event signature into its hex-encoded topic.
func Keccak256(signature string) string {
	hasher := sha3.NewLegacyKeccak256()

	hasher.Write([]byte(signature))

	return hex.EncodeToString(hasher.Sum(nil))
}
