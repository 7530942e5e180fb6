package identity

import (
	"regexp"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jasony/sccwallet/internal/sccerr"
)

// User is the identity record owned exclusively by this package, per
// spec.md §3.
type User struct {
	ID                string
	UsernameCanonical string
	PasswordVerifier  string
	AuthSalt          []byte
	CreatedAt         time.Time
	LastLoginAt       time.Time
	TOTPSecret        []byte // base32-decoded; empty until enrolled
	TOTPEnabled       bool
	IsActive          bool
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,50}$`)

// ValidateUsername enforces spec.md §3: case-folded uniqueness key,
// length 3..50, charset [A-Za-z0-9_-].
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return sccerr.New("identity.ValidateUsername", sccerr.InvalidUsername)
	}
	return nil
}

// CanonicalUsername case-folds username for the uniqueness key.
func CanonicalUsername(username string) string {
	r := []rune(username)
	for i, c := range r {
		r[i] = unicode.ToLower(c)
	}
	return string(r)
}

// passwordMinLen/passwordMaxLen/passwordMinScore implement spec.md
// §4.5.1 step 2: length 12..128, each of {upper, lower, digit,
// special} present, strength score >= 80 (20 points per class).
const (
	passwordMinLen   = 12
	passwordMaxLen   = 128
	passwordMinScore = 80
)

// ValidatePassword enforces the registration password policy.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return sccerr.New("identity.ValidatePassword", sccerr.WeakPassword)
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			hasSpecial = true
		}
	}
	score := 0
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
		if ok {
			score += 20
		}
	}
	if score < passwordMinScore {
		return sccerr.New("identity.ValidatePassword", sccerr.WeakPassword)
	}
	return nil
}

// NewUserID generates a fresh random user identifier.
func NewUserID() string { return uuid.NewString() }
