package signing

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"testing"
)

func testCredential() *Credential {
	return &Credential{
		Certificate: &x509.Certificate{
			Subject: pkix.Name{
				CommonName:         "Apple Development: Jane Doe (ABCDE12345)",
				OrganizationalUnit: []string{"ABCDE12345"},
			},
		},
	}
}

func testProfile() *Profile {
	return &Profile{
		Name:           "Dev Profile",
		UUID:           "11111111-2222-3333-4444-555555555555",
		TeamIdentifier: []string{"ABCDE12345"},
	}
}

func TestResolveCredentialAndProfileIsManual(t *testing.T) {
	cfg := Resolve(testCredential(), testProfile())
	if cfg.Style != StyleManual {
		t.Errorf("expected Manual, got %s", cfg.Style)
	}
	if cfg.Identity != "Apple Development: Jane Doe (ABCDE12345)" {
		t.Errorf("unexpected identity %q", cfg.Identity)
	}
	if cfg.TeamID != "ABCDE12345" {
		t.Errorf("unexpected team id %q", cfg.TeamID)
	}
	if cfg.ProfileUUID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("unexpected profile uuid %q", cfg.ProfileUUID)
	}
}

func TestResolveCredentialOnlyIsAutomatic(t *testing.T) {
	cfg := Resolve(testCredential(), nil)
	if cfg.Style != StyleAutomatic {
		t.Errorf("expected Automatic, got %s", cfg.Style)
	}
	if cfg.Identity == "" || cfg.TeamID == "" {
		t.Error("identity fields should be populated from the credential")
	}
	if cfg.ProfileUUID != "" {
		t.Errorf("no profile means no UUID, got %q", cfg.ProfileUUID)
	}
}

func TestResolveProfileOnlyIsAutomatic(t *testing.T) {
	cfg := Resolve(nil, testProfile())
	if cfg.Style != StyleAutomatic {
		t.Errorf("expected Automatic, got %s", cfg.Style)
	}
	if cfg.Identity != "" || cfg.TeamID != "" || cfg.ProfileUUID != "" {
		t.Errorf("a profile alone must not populate any field, got %+v", cfg)
	}
}

func TestResolveNothingIsAutomaticUnset(t *testing.T) {
	cfg := Resolve(nil, nil)
	if cfg.Style != StyleAutomatic {
		t.Errorf("expected Automatic, got %s", cfg.Style)
	}
	if cfg.Identity != "" || cfg.TeamID != "" || cfg.ProfileUUID != "" {
		t.Errorf("expected all fields unset, got %+v", cfg)
	}
}

func mapGetenv(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvEmpty(t *testing.T) {
	cred, profile, err := FromEnv(mapGetenv(nil))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cred != nil || profile != nil {
		t.Error("expected no material from an empty environment")
	}
}

func TestFromEnvCertificateRequiresPassword(t *testing.T) {
	cred, profile, err := FromEnv(mapGetenv(map[string]string{
		CertificateEnvVar: "QUJD",
	}))
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cred != nil || profile != nil {
		t.Error("a certificate without its password must be ignored")
	}
}

func TestFromEnvMalformedCertificate(t *testing.T) {
	_, _, err := FromEnv(mapGetenv(map[string]string{
		CertificateEnvVar:         "!!not-base64!!",
		CertificatePasswordEnvVar: "secret",
	}))
	if !errors.Is(err, ErrCredentialInvalid) {
		t.Fatalf("expected ErrCredentialInvalid, got %v", err)
	}
}

func TestFromEnvMalformedProfile(t *testing.T) {
	_, _, err := FromEnv(mapGetenv(map[string]string{
		ProfileEnvVar: "!!not-base64!!",
	}))
	if !errors.Is(err, ErrCredentialInvalid) {
		t.Fatalf("expected ErrCredentialInvalid, got %v", err)
	}
}

func TestParseProfileRejectsGarbage(t *testing.T) {
	_, err := ParseProfile([]byte("this is not a CMS container"))
	if !errors.Is(err, ErrCredentialInvalid) {
		t.Fatalf("expected ErrCredentialInvalid, got %v", err)
	}
}

func TestCredentialTeamIDFiltersShortUnits(t *testing.T) {
	cred := &Credential{
		Certificate: &x509.Certificate{
			Subject: pkix.Name{
				OrganizationalUnit: []string{"Engineering", "ABCDE12345"},
			},
		},
	}
	if got := cred.TeamID(); got != "ABCDE12345" {
		t.Errorf("expected the 10-character unit, got %q", got)
	}
}

func TestProfileTeamIDFallsBackToPrefix(t *testing.T) {
	p := &Profile{ApplicationIdentifierPrefix: []string{"ZYXWV98765"}}
	if got := p.TeamID(); got != "ZYXWV98765" {
		t.Errorf("expected prefix fallback, got %q", got)
	}
}
