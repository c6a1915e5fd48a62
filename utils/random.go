package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	alphanumeric  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	passwordExtra = "!@#$%*"
)

func GenerateRandomString(n int) string {
	return randomFrom(alphanumeric, n)
}

// GenerateTemporaryPassword returns a 12 character password with at least one symbol.
func GenerateTemporaryPassword() string {
	return randomFrom(alphanumeric, 11) + randomFrom(passwordExtra, 1)
}

func randomFrom(charset string, n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand unavailable")
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out)
}
