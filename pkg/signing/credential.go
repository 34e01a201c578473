package signing

import (
	"crypto"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"

	gop12 "software.sslmate.com/src/go-pkcs12"
)

// Credential is a locally held signing identity: the certificate and
// private key decoded from a PKCS#12 archive.
type Credential struct {
	Certificate *x509.Certificate
	PrivateKey  crypto.PrivateKey
	CertChain   []*x509.Certificate
}

// LoadCredential decodes a PKCS#12 archive into a Credential.
func LoadCredential(p12Data []byte, password string) (*Credential, error) {
	privateKey, cert, caCerts, err := gop12.DecodeChain(p12Data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing certificate: %w", errors.Join(ErrCredentialInvalid, err))
	}

	chain := []*x509.Certificate{cert}
	chain = append(chain, caCerts...)

	return &Credential{
		Certificate: cert,
		PrivateKey:  privateKey,
		CertChain:   chain,
	}, nil
}

// CredentialFromBase64 decodes a base64-encoded PKCS#12 archive, the form
// certificates take when supplied through the environment in CI.
func CredentialFromBase64(encoded, password string) (*Credential, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing certificate: %w", errors.Join(ErrCredentialInvalid, err))
	}
	return LoadCredential(data, password)
}

// SigningIdentity returns the identity name Xcode displays for this
// credential, e.g. "Apple Development: Jane Doe (TEAM123456)".
func (c *Credential) SigningIdentity() string {
	return c.Certificate.Subject.CommonName
}

// TeamID extracts the team identifier from the certificate.
func (c *Credential) TeamID() string {
	// Team ID is typically in the Organizational Unit field
	for _, ou := range c.Certificate.Subject.OrganizationalUnit {
		if len(ou) == 10 { // Apple Team IDs are 10 characters
			return ou
		}
	}
	return ""
}
