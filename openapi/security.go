package openapi

import (
	"slices"

	"github.com/oasref/openapi/sequencedmap"
)

// SecuritySchemeType is the type of a security scheme.
type SecuritySchemeType string

const (
	SecuritySchemeTypeAPIKey        SecuritySchemeType = "apiKey"
	SecuritySchemeTypeHTTP          SecuritySchemeType = "http"
	SecuritySchemeTypeOAuth2        SecuritySchemeType = "oauth2"
	SecuritySchemeTypeOpenIDConnect SecuritySchemeType = "openIdConnect"
)

// SecurityScheme is the OpenAPI 3.0 Security Scheme Object.
type SecurityScheme struct {
	Object

	Type             SecuritySchemeType `key:"type" required:"true"`
	Description      *string            `key:"description"`
	Name             *string            `key:"name"`
	In               *string            `key:"in"`
	Scheme           *string            `key:"scheme"`
	BearerFormat     *string            `key:"bearerFormat"`
	Flows            *OAuthFlows        `key:"flows"`
	OpenIDConnectURL *string            `key:"openIdConnectUrl"`
}

func (s *SecurityScheme) validate() {
	switch s.Type {
	case "":
	case SecuritySchemeTypeAPIKey:
		requireSet(&s.Object, "SecurityScheme", "name", s.Name != nil)
		requireSet(&s.Object, "SecurityScheme", "in", s.In != nil)
		if s.In != nil && !slices.Contains([]string{"query", "header", "cookie"}, *s.In) {
			s.addValidationError("Invalid value for Security Scheme property 'in': %s", *s.In)
		}
	case SecuritySchemeTypeHTTP:
		requireSet(&s.Object, "SecurityScheme", "scheme", s.Scheme != nil)
	case SecuritySchemeTypeOAuth2:
		requireSet(&s.Object, "SecurityScheme", "flows", s.Flows != nil)
	case SecuritySchemeTypeOpenIDConnect:
		requireSet(&s.Object, "SecurityScheme", "openIdConnectUrl", s.OpenIDConnectURL != nil)
	default:
		s.addValidationError("Unknown Security Scheme type: %s", s.Type)
	}
}

// OAuthFlows is the OpenAPI 3.0 OAuth Flows Object.
type OAuthFlows struct {
	Object

	Implicit          *OAuthFlow `key:"implicit"`
	Password          *OAuthFlow `key:"password"`
	ClientCredentials *OAuthFlow `key:"clientCredentials"`
	AuthorizationCode *OAuthFlow `key:"authorizationCode"`
}

// OAuthFlow is the OpenAPI 3.0 OAuth Flow Object.
type OAuthFlow struct {
	Object

	AuthorizationURL *string                           `key:"authorizationUrl"`
	TokenURL         *string                           `key:"tokenUrl"`
	RefreshURL       *string                           `key:"refreshUrl"`
	Scopes           *sequencedmap.Map[string, string] `key:"scopes" required:"true"`
}

// SecurityRequirement maps security scheme names to the scopes required of
// them. An empty requirement makes security optional.
type SecurityRequirement struct {
	Object

	Schemes *sequencedmap.Map[string, []string] `key:",inline"`
}

// GetScopes returns the scopes required for the named scheme.
func (s *SecurityRequirement) GetScopes(scheme string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	return s.Schemes.Get(scheme)
}
