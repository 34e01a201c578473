package signing

// Style selects how Xcode performs code signing for the generated project.
type Style string

const (
	StyleAutomatic Style = "Automatic"
	StyleManual    Style = "Manual"
)

// Environment variables carrying signing material in CI. The certificate
// is only consulted when its password variable is also set.
const (
	CertificateEnvVar         = "IOS_CERTIFICATE"
	CertificatePasswordEnvVar = "IOS_CERTIFICATE_PASSWORD"
	ProfileEnvVar             = "IOS_MOBILE_PROVISION"
)

// Config is the signing configuration derived from the available
// material. Fields left empty are explicitly unset.
type Config struct {
	Style       Style
	Identity    string
	TeamID      string
	ProfileUUID string
}

// Resolve maps the available signing material to a signing configuration.
// Manual signing requires the joint presence of a credential and a
// provisioning profile; every other combination resolves to automatic
// signing. A profile alone contributes nothing — its UUID is only pinned
// when a credential accompanies it.
func Resolve(cred *Credential, profile *Profile) Config {
	cfg := Config{Style: StyleAutomatic}
	if cred != nil {
		cfg.Identity = cred.SigningIdentity()
		cfg.TeamID = cred.TeamID()
	}
	if cred != nil && profile != nil {
		cfg.Style = StyleManual
		cfg.ProfileUUID = profile.UUID
	}
	return cfg
}

// FromEnv loads signing material from the environment. Unset variables
// yield nil material; malformed material is an error.
func FromEnv(getenv func(string) string) (*Credential, *Profile, error) {
	var cred *Credential
	if cert, password := getenv(CertificateEnvVar), getenv(CertificatePasswordEnvVar); cert != "" && password != "" {
		var err error
		cred, err = CredentialFromBase64(cert, password)
		if err != nil {
			return nil, nil, err
		}
	}

	var profile *Profile
	if encoded := getenv(ProfileEnvVar); encoded != "" {
		var err error
		profile, err = ProfileFromBase64(encoded)
		if err != nil {
			return nil, nil, err
		}
	}
	return cred, profile, nil
}
