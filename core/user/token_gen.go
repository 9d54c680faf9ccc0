package user

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"hash"
	"strconv"
	"strings"
	"time"

	"github.com/trezcool/ujumbe/core"
)

var (
	errInvalidToken = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

// EncodeUID hides the user ID in password reset links.
func EncodeUID(usr User) string {
	return base64.RawURLEncoding.EncodeToString([]byte(usr.ID))
}

func decodeUID(uid string) (string, error) {
	id, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return "", err
	}
	return string(id), nil
}

// tokenGenerator makes password reset tokens of the form "<day>-<signature>":
// day is the issue day (days since the unix epoch, base 32) and signature an
// HMAC of the user state, so a login or a password change voids older tokens.
type tokenGenerator struct {
	key      []byte
	validFor int64 // days
}

func newTokenGenerator(conf *core.Config) tokenGenerator {
	key := sha256.Sum256([]byte(conf.AppName + "/password-reset/" + conf.SecretKey))
	return tokenGenerator{
		key:      key[:],
		validFor: int64(conf.PasswordResetTimeoutDelta / (24 * time.Hour)),
	}
}

// MakeResetToken returns the password reset token of usr as issued at t.
func MakeResetToken(conf *core.Config, usr User, t time.Time) string {
	return newTokenGenerator(conf).make(usr, dayOf(t))
}

func (g tokenGenerator) make(usr User, day int64) string {
	return strconv.FormatInt(day, 32) + "-" + g.signature(usr, day)
}

func (g tokenGenerator) check(usr User, token string, now time.Time) error {
	dayStr, sig, ok := strings.Cut(token, "-")
	if !ok || sig == "" {
		return errInvalidToken
	}
	day, err := strconv.ParseInt(dayStr, 32, 64)
	if err != nil {
		return errInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(g.signature(usr, day))) {
		return errInvalidToken
	}

	age := dayOf(now) - day
	if age < 0 {
		return errInvalidToken
	}
	if age > g.validFor {
		return errTokenExpired
	}
	return nil
}

func (g tokenGenerator) signature(usr User, day int64) string {
	mac := hmac.New(sha256.New, g.key)
	writeField(mac, usr.ID)
	writeField(mac, string(usr.PasswordHash))
	if !usr.LastLogin.IsZero() {
		writeField(mac, strconv.FormatInt(usr.LastLogin.UnixNano(), 10))
	}
	writeField(mac, strconv.FormatInt(day, 10))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// writeField length-prefixes s so that no two user states sign the same bytes.
func writeField(h hash.Hash, s string) {
	_, _ = h.Write([]byte(strconv.Itoa(len(s)) + ":" + s))
}

func dayOf(t time.Time) int64 {
	return t.Unix() / int64(24*time.Hour/time.Second)
}
