package synthesis

import (
	"strings"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// Credential is the synthesis collaborator access pair,
// persisted as one "<key>|<endpoint-url>" string.
type Credential struct {
	APIKey   string
	Endpoint string
}

// ParseCredential splits the persisted "<key>|<endpoint-url>" form.
func ParseCredential(raw string) (Credential, error) {
	key, endpoint, found := strings.Cut(raw, "|")
	if !found || key == "" || endpoint == "" {
		return Credential{}, errors.New(`invalid credential, expected format "<key>|<endpoint-url>"`)
	}
	return Credential{APIKey: key, Endpoint: endpoint}, nil
}

func (c Credential) String() string {
	return c.APIKey + "|" + c.Endpoint
}

// Masked returns a display form that does not leak the key.
func (c Credential) Masked() string {
	if len(c.APIKey) <= 4 {
		return "****|" + c.Endpoint
	}
	return c.APIKey[:4] + strings.Repeat("*", len(c.APIKey)-4) + "|" + c.Endpoint
}

// IsSet reports whether both parts are present.
func (c Credential) IsSet() bool {
	return c.APIKey != "" && c.Endpoint != ""
}
