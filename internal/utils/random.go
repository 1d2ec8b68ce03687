package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const sessionKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const sessionKeyLength = 10

// GenerateSessionKey mints an opaque identifier used for both session ids
// and secret keys. Uniqueness is probabilistic, not enforced at the data
// layer.
func GenerateSessionKey() (string, error) {
	key := make([]byte, sessionKeyLength)
	max := big.NewInt(int64(len(sessionKeyAlphabet)))
	for i := range key {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		key[i] = sessionKeyAlphabet[n.Int64()]
	}
	return string(key), nil
}

// GenerateHandshakeToken mints the canonical single-use token for the
// second-device handshake: 16 random bytes, hex-encoded.
func GenerateHandshakeToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
