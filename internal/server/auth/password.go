package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/dmitrijs2005/blogify/internal/common"
	"github.com/dmitrijs2005/blogify/internal/server/models"
)

// saltSize is the number of random bytes in a salt (128 bits).
const saltSize = 16

// NewSalt returns a fresh random salt rendered as hex text.
func NewSalt() (string, error) {
	return common.MakeRandHexString(saltSize)
}

// HashPassword returns hex(HMAC-SHA256(key=salt, message=password)).
func HashPassword(salt, password string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckPassword recomputes the hash of password under salt and compares it
// with hash in constant time.
func CheckPassword(salt, hash, password string) bool {
	want, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), want)
}

// SetPassword stores a new credential on u: a freshly generated salt and
// the matching hash. The plaintext is not retained.
func SetPassword(u *models.User, password string) error {
	if password == "" {
		return errors.New("empty password")
	}
	salt, err := NewSalt()
	if err != nil {
		return err
	}
	u.Salt = salt
	u.PasswordHash = HashPassword(salt, password)
	return nil
}
