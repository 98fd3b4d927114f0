// Package cryptox implements password-based encryption of opaque strings
// used for protected note content and encrypted backup artifacts.
//
// Keys are derived per blob with PBKDF2-SHA256 and a fresh random salt;
// payloads are sealed with AES-256-GCM under a fresh random nonce. There is
// no stored master key: losing the password means the data is unrecoverable,
// which is the intended trade-off.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/dmitrijs2005/focusflow/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength  = 32
	saltLength = 16
	ivLength   = 12
	iterations = 100000
)

// EncryptedBlob carries one encrypted payload together with the parameters
// needed to decrypt it. All fields are base64 (StdEncoding).
type EncryptedBlob struct {
	Ciphertext string `json:"encryptedData"`
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
}

// DeriveKey stretches password into a 256-bit AES key using PBKDF2-SHA256.
func DeriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLength, sha256.New)
}

// Encrypt seals plaintext under a key derived from password. Every call
// generates a new salt and nonce, so encrypting identical inputs twice
// yields different blobs.
func Encrypt(plaintext, password string) (*EncryptedBlob, error) {
	salt := common.GenerateRandByteArray(saltLength)
	iv := common.GenerateRandByteArray(ivLength)

	aesgcm, err := newGCM(DeriveKey([]byte(password), salt))
	if err != nil {
		return nil, err
	}

	ciphertext := aesgcm.Seal(nil, iv, []byte(plaintext), nil)

	return &EncryptedBlob{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// Decrypt opens a blob produced by Encrypt. A wrong password and a corrupted
// blob both fail the GCM integrity check and are reported identically as
// common.ErrDecryptionFailed; garbage is never returned.
func Decrypt(blob *EncryptedBlob, password string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(blob.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	salt, err := base64.StdEncoding.DecodeString(blob.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	iv, err := base64.StdEncoding.DecodeString(blob.IV)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	if len(iv) != ivLength {
		return "", common.ErrDecryptionFailed
	}

	aesgcm, err := newGCM(DeriveKey([]byte(password), salt))
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// EncryptToString encrypts data and joins the blob into the canonical
// single-string encoding "salt.iv.ciphertext" (dot-separated base64 fields),
// suitable for storage in a single opaque text field.
func EncryptToString(data, password string) (string, error) {
	blob, err := Encrypt(data, password)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s.%s", blob.Salt, blob.IV, blob.Ciphertext), nil
}

// DecryptFromString reverses EncryptToString. Input that does not split into
// exactly three dot-separated parts fails with common.ErrInvalidBlobFormat.
func DecryptFromString(encrypted, password string) (string, error) {
	parts := strings.Split(encrypted, ".")
	if len(parts) != 3 {
		return "", common.ErrInvalidBlobFormat
	}
	return Decrypt(&EncryptedBlob{Salt: parts[0], IV: parts[1], Ciphertext: parts[2]}, password)
}

// Strength is an advisory password rating. It never blocks an operation.
type Strength string

const (
	StrengthWeak       Strength = "weak"
	StrengthMedium     Strength = "medium"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very-strong"
)

// EstimatePasswordStrength scores a password from its length and the
// character classes it contains. The scoring is deterministic: one point
// each for length >= 12, lowercase, uppercase, digit and symbol.
func EstimatePasswordStrength(password string) Strength {
	if len(password) < 8 {
		return StrengthWeak
	}

	score := 0
	if len(password) >= 12 {
		score++
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if ok {
			score++
		}
	}

	switch {
	case score < 3:
		return StrengthWeak
	case score < 4:
		return StrengthMedium
	case score < 5:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// GeneratePassword returns a random password of the given length drawn from
// a fixed charset of letters, digits and common symbols.
func GeneratePassword(length int) string {
	raw := common.GenerateRandByteArray(length)
	out := make([]byte, length)
	for i, b := range raw {
		out[i] = passwordCharset[int(b)%len(passwordCharset)]
	}
	return string(out)
}

// HashPassword returns the base64 SHA-256 digest of password. It is meant
// for verification only and must never be used as an encryption key.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword reports whether password matches a digest produced by
// HashPassword.
func VerifyPassword(password, hash string) bool {
	return HashPassword(password) == hash
}

var (
	supportedOnce sync.Once
	supported     bool
)

// IsSupported reports whether the AES-GCM primitives this package relies on
// are operational. Callers should check it before offering encryption
// features and hide them when it returns false.
func IsSupported() bool {
	supportedOnce.Do(func() {
		key := common.GenerateRandByteArray(keyLength)
		aesgcm, err := newGCM(key)
		if err != nil {
			return
		}
		nonce := common.GenerateRandByteArray(ivLength)
		ct := aesgcm.Seal(nil, nonce, []byte("probe"), nil)
		pt, err := aesgcm.Open(nil, nonce, ct, nil)
		supported = err == nil && string(pt) == "probe"
	})
	return supported
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
