package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/zalando/go-keyring"
)

// CredentialStore resolves the password used for authenticated vCard downloads.
type CredentialStore interface {
	Password(user string) (string, error)
}

// KeyringCredentials reads passwords from the OS keyring under Service.
type KeyringCredentials struct {
	Service string
}

// NewKeyringCredentials uses the application keyring service.
func NewKeyringCredentials() KeyringCredentials {
	return KeyringCredentials{Service: config.KeyringService}
}

// Password returns the stored secret for user. A missing entry is not an
// error: the download is attempted without a password.
func (k KeyringCredentials) Password(user string) (string, error) {
	if user == "" {
		return "", nil
	}
	secret, err := keyring.Get(k.Service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgPassMissing,
			config.LogKeyComponent, config.CompKeyring,
			config.LogKeyUser, user,
		)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	return secret, nil
}
