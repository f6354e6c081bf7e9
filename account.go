package launchkit

import (
	"crypto/md5"
	"fmt"

	"github.com/google/uuid"
)

// AccountType identifies how an account authenticates.
type AccountType string

const (
	// AccountMicrosoft authenticates against Microsoft services.
	AccountMicrosoft AccountType = "microsoft"

	// AccountOffline has no remote authentication and is identified
	// solely by username. UUID and access token are synthesized.
	AccountOffline AccountType = "offline"

	// AccountThirdParty authenticates against a third-party service.
	AccountThirdParty AccountType = "thirdparty"
)

// Account is a player identity record consumed from the account store.
// launchkit never persists or mutates accounts.
type Account struct {
	Username    string      `json:"username"`
	UUID        string      `json:"uuid,omitempty"`
	Type        AccountType `json:"type"`
	AccessToken string      `json:"access_token,omitempty"`
}

// Complete reports whether the account carries all fields required for
// its type. Offline accounts need only a username; authenticated accounts
// additionally need a UUID and access token.
func (a Account) Complete() error {
	if a.Username == "" {
		return fmt.Errorf("account: username is empty")
	}
	switch a.Type {
	case AccountOffline:
		return nil
	case AccountMicrosoft, AccountThirdParty:
		if a.UUID == "" {
			return fmt.Errorf("account: %s account %q has no UUID", a.Type, a.Username)
		}
		if a.AccessToken == "" {
			return fmt.Errorf("account: %s account %q has no access token", a.Type, a.Username)
		}
		return nil
	default:
		return fmt.Errorf("account: unknown account type %q", a.Type)
	}
}

// offlineUUIDPrefix is hashed together with the username to synthesize
// offline identities. The value is fixed by the game's own offline-mode
// scheme — changing it would change every offline player's identity.
const offlineUUIDPrefix = "OfflinePlayer:"

// OfflineUUID synthesizes a deterministic identity for an offline account.
// The UUID is the MD5 of the fixed prefix concatenated with the username,
// with version 3 and RFC 4122 variant bits set — the same construction as
// Java's UUID.nameUUIDFromBytes, so identities match the game's own
// offline mode. Stable across calls and process restarts.
func OfflineUUID(username string) uuid.UUID {
	sum := md5.Sum([]byte(offlineUUIDPrefix + username))
	sum[6] = (sum[6] & 0x0f) | 0x30 // version 3 (name-based, MD5)
	sum[8] = (sum[8] & 0x3f) | 0x80 // RFC 4122 variant
	u, err := uuid.FromBytes(sum[:])
	if err != nil {
		// md5.Sum is always 16 bytes; FromBytes cannot fail.
		panic(err)
	}
	return u
}
