package utils

import "crypto/rand"

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns a random alphanumeric code, used for
// password reset verification.
func GenerateRandomToken(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i := range buf {
		buf[i] = tokenCharset[int(buf[i])%len(tokenCharset)]
	}
	return string(buf)
}
