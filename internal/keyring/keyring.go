package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/intima/internal/constants"
)

var (
	// ErrNotFound is returned when the credential has never been stored
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Credential is one secret in the OS keyring, addressed by service and account
type Credential struct {
	Service string
	Account string
}

// DatabaseConnection is the PostgreSQL connection string used when neither --db nor
// INTIMA_DB_CONNECTION names a database.
var DatabaseConnection = Credential{Service: constants.AppName, Account: constants.DefaultKeyringUser}

// availabilityCheck is never written; reading it only tells whether the keyring answers
var availabilityCheck = Credential{Service: constants.AppName, Account: "availability-check"}

func (c Credential) Get() (string, error) {
	secret, err := keyring.Get(c.Service, c.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Lookup is Get with a missing credential reported as found=false instead of an error
func (c Credential) Lookup() (secret string, found bool, err error) {
	secret, err = c.Get()
	switch {
	case err == nil:
		return secret, true, nil
	case errors.Is(err, ErrNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

// Set stores secret with surrounding whitespace removed
func (c Credential) Set(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(c.Service, c.Account, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (c Credential) Delete() error {
	if err := keyring.Delete(c.Service, c.Account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers at all
func IsAvailable() bool {
	_, _, err := availabilityCheck.Lookup()
	return err == nil
}
