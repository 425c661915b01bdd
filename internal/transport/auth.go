package transport

import (
	"net/http"
	"strings"

	"github.com/agentstation/diecast/pkg/errors"
)

// Authenticator applies a credential to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sends the token as a Bearer authorization header.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth sends the token verbatim in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth sends the token as a query parameter.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth reads an authentication scheme:
//
//	"" or "bearer"   Authorization: Bearer <token>
//	"header:<name>"  <name>: <token>
//	"query:<param>"  ?<param>=<token>
//	"none"           nothing
func ParseAuth(scheme string) (Authenticator, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(scheme), ":")
	switch strings.ToLower(kind) {
	case "", "bearer":
		return &BearerAuth{}, nil
	case "none":
		return &NoAuth{}, nil
	case "header":
		if arg == "" {
			break
		}
		return &HeaderAuth{Header: arg}, nil
	case "query":
		if arg == "" {
			break
		}
		return &QueryAuth{Param: arg}, nil
	}
	return nil, errors.NewValidationError("catalog_auth", scheme, "must be bearer, none, header:<name> or query:<param>")
}
