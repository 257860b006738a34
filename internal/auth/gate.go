package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"examcracker/internal/config"
)

// ErrMissingCredentials is returned when the username or password is empty.
var ErrMissingCredentials = errors.New("please enter username and password")

// Identity is the authenticated principal carried by a session.
type Identity struct {
	Username string
	IsAdmin  bool
}

// Verifier checks a credential pair against the configured admin identity.
// The comparison strategy is injected so hashing can be substituted without
// touching call sites.
type Verifier interface {
	Verify(username, password string) bool
}

// PlainVerifier performs a literal string comparison against a fixed
// username/password pair. This matches the portal's historical behavior and
// is the default; supply ADMIN_PASSWORD_BCRYPT to switch to hashed checks.
type PlainVerifier struct {
	Username string
	Password string
}

func (v PlainVerifier) Verify(username, password string) bool {
	return username == v.Username && password == v.Password
}

// BcryptVerifier compares the password against a bcrypt hash.
type BcryptVerifier struct {
	Username string
	Hash     string
}

func (v BcryptVerifier) Verify(username, password string) bool {
	if username != v.Username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.Hash), []byte(password)) == nil
}

// Gate decides the identity for a login attempt. The admin pair yields an
// admin identity; any other non-empty pair yields a regular identity.
type Gate struct {
	verifier Verifier
}

// NewGate constructs a Gate around the given admin verifier.
func NewGate(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// NewGateFromConfig builds a Gate from configuration, choosing the bcrypt
// verifier when an admin password hash is configured.
func NewGateFromConfig(cfg config.AuthConfig) *Gate {
	if cfg.AdminPasswordBcrypt != "" {
		return NewGate(BcryptVerifier{Username: cfg.AdminUsername, Hash: cfg.AdminPasswordBcrypt})
	}
	return NewGate(PlainVerifier{Username: cfg.AdminUsername, Password: cfg.AdminPassword})
}

// Authenticate validates a login attempt and returns the resulting identity.
func (g *Gate) Authenticate(username, password string) (Identity, error) {
	if username == "" || password == "" {
		return Identity{}, ErrMissingCredentials
	}
	if g.verifier.Verify(username, password) {
		return Identity{Username: username, IsAdmin: true}, nil
	}
	return Identity{Username: username, IsAdmin: false}, nil
}
