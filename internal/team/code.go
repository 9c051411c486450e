package team

import (
	"crypto/rand"
	"math/big"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	CodeLength  = 6
)

// GenerateCode returns a random share code of CodeLength characters drawn
// from codeCharset.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(codeCharset)))

	code := make([]byte, CodeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[num.Int64()]
	}
	return string(code), nil
}

// ValidCode reports whether id could have been produced by GenerateCode.
func ValidCode(id string) bool {
	if len(id) != CodeLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
