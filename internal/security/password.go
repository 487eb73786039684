package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pwdAlgorithm      = "pbkdf2_sha256"
	pwdIterations     = 210_000
	saltLength        = 16
	keyLength         = 32
	minPasswordLength = 8
)

var errInvalidHashFormat = errors.New("password: invalid encoded hash format")

// HashPassword derives a salted PBKDF2-HMAC-SHA256 key and encodes it as
// four $-joined fields: algorithm tag, iteration count, base64url salt,
// base64url derived key (both unpadded).
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, pwdIterations, keyLength, sha256.New)

	encodedSalt := base64.RawURLEncoding.EncodeToString(salt)
	encodedKey := base64.RawURLEncoding.EncodeToString(key)
	return strings.Join([]string{
		pwdAlgorithm,
		strconv.Itoa(pwdIterations),
		encodedSalt,
		encodedKey,
	}, "$"), nil
}

// VerifyPassword recomputes the derived key with the stored salt and
// iteration count and compares in constant time. Any malformed stored
// value verifies false; a wrong password and a bad hash are
// indistinguishable to the caller.
func VerifyPassword(password, encoded string) bool {
	iterations, salt, expected, err := decodeHash(encoded)
	if err != nil {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}

// ValidEncodedHash checks the stored-hash shape accepted at construction
// time: exactly four fields with our algorithm tag.
func ValidEncodedHash(encoded string) bool {
	parts := strings.Split(encoded, "$")
	return len(parts) == 4 && parts[0] == pwdAlgorithm && strings.TrimSpace(encoded) != ""
}

func decodeHash(encoded string) (iterations int, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		err = errInvalidHashFormat
		return
	}
	if parts[0] != pwdAlgorithm {
		err = fmt.Errorf("password: unexpected algorithm %q", parts[0])
		return
	}
	iterations, err = strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		err = errInvalidHashFormat
		return
	}
	salt, err = base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		err = fmt.Errorf("password: decode salt: %w", err)
		return
	}
	key, err = base64.RawURLEncoding.DecodeString(parts[3])
	if err != nil {
		err = fmt.Errorf("password: decode key: %w", err)
		return
	}
	return
}
