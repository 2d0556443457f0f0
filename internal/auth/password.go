// Package auth manages resident portal credentials: argon2id password
// digests stored on the resident record, temporary passwords with a forced
// change, and the access tokens handed to the UI layer after login.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/sakanapp/sakan/internal/models"
)

var (
	ErrNoCredentials   = errors.New("resident has no credentials set")
	ErrWrongPassword   = errors.New("wrong password")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)

const saltSize = 16

// deriveKey is argon2id with parameters fixed for the life of the stored
// hashes; changing them invalidates every stored digest.
func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// SetPassword installs a permanent password on the resident, clearing any
// temporary one and the force-change flag. The caller persists the record.
func SetPassword(r *models.Resident, password string) error {
	if len(password) < 8 {
		return ErrPasswordTooWeak
	}
	salt, err := newSalt()
	if err != nil {
		return err
	}

	r.PasswordSalt = hex.EncodeToString(salt)
	r.PasswordHash = hex.EncodeToString(deriveKey([]byte(password), salt))
	r.TempPasswordHash = ""
	r.TempPasswordSalt = ""
	r.ForcePasswordChange = false
	return nil
}

// SetTempPassword installs a one-time password and raises the force-change
// flag. The permanent credentials, if any, stay valid.
func SetTempPassword(r *models.Resident, password string) error {
	if len(password) < 8 {
		return ErrPasswordTooWeak
	}
	salt, err := newSalt()
	if err != nil {
		return err
	}

	r.TempPasswordSalt = hex.EncodeToString(salt)
	r.TempPasswordHash = hex.EncodeToString(deriveKey([]byte(password), salt))
	r.ForcePasswordChange = true
	return nil
}

// Verify checks password against the resident's permanent and then
// temporary credentials. mustChange is true when the match came from a
// temporary password or the force-change flag is set.
func Verify(r *models.Resident, password string) (mustChange bool, err error) {
	if r.PasswordHash == "" && r.TempPasswordHash == "" {
		return false, ErrNoCredentials
	}

	if matches(password, r.PasswordHash, r.PasswordSalt) {
		return r.ForcePasswordChange, nil
	}
	if matches(password, r.TempPasswordHash, r.TempPasswordSalt) {
		return true, nil
	}
	return false, ErrWrongPassword
}

func matches(password, hashHex, saltHex string) bool {
	if hashHex == "" || saltHex == "" {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	got := deriveKey([]byte(password), salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}
