package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// No 0/O or 1/I, human IDs get read over the phone.
const humanIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// HumanID builds a short readable identifier such as PAT-4F7K2M or
// DOC-9XQ2TB, assigned in addition to the database primary key.
func HumanID(prefix string) string {
	b := make([]byte, 6)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(humanIDAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			n = big.NewInt(int64(i))
		}
		b[i] = humanIDAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s", prefix, string(b))
}

// GenerateOTP returns a 6-digit one-time code for password resets.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(0)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
