// Package signing resolves the code-signing configuration for a build
// from locally available material: a signing credential (certificate plus
// private key) and a provisioning profile.
package signing

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.mozilla.org/pkcs7"
	"howett.net/plist"
)

// ErrCredentialInvalid marks malformed signing material: an undecodable
// certificate archive or provisioning profile.
var ErrCredentialInvalid = errors.New("invalid signing material")

// Profile represents a parsed .mobileprovision file
type Profile struct {
	Name                        string    `plist:"Name"`
	TeamName                    string    `plist:"TeamName"`
	TeamIdentifier              []string  `plist:"TeamIdentifier"`
	ApplicationIdentifierPrefix []string  `plist:"ApplicationIdentifierPrefix"`
	UUID                        string    `plist:"UUID"`
	CreationDate                time.Time `plist:"CreationDate"`
	ExpirationDate              time.Time `plist:"ExpirationDate"`
	Platform                    []string  `plist:"Platform"`
}

// ParseProfile parses a .mobileprovision file.
// The file is a CMS (PKCS#7) signed container with a plist payload.
func ParseProfile(data []byte) (*Profile, error) {
	p7, err := pkcs7.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provisioning profile container: %w", errors.Join(ErrCredentialInvalid, err))
	}

	var profile Profile
	if _, err := plist.Unmarshal(p7.Content, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse provisioning profile plist: %w", errors.Join(ErrCredentialInvalid, err))
	}
	return &profile, nil
}

// ProfileFromBase64 parses a base64-encoded .mobileprovision, the form
// profiles take when supplied through the environment in CI.
func ProfileFromBase64(encoded string) (*Profile, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode provisioning profile: %w", errors.Join(ErrCredentialInvalid, err))
	}
	return ParseProfile(data)
}

// TeamID returns the team identifier from the profile
func (p *Profile) TeamID() string {
	if len(p.TeamIdentifier) > 0 {
		return p.TeamIdentifier[0]
	}
	if len(p.ApplicationIdentifierPrefix) > 0 {
		return p.ApplicationIdentifierPrefix[0]
	}
	return ""
}

// IsExpired checks if the provisioning profile has expired
func (p *Profile) IsExpired() bool {
	return time.Now().After(p.ExpirationDate)
}
