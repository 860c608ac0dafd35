package selfserve

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// AuthProvider supplies the bearer token for outgoing requests. An empty
// token means the request is sent without an Authorization header. The token
// is treated as opaque.
type AuthProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to AuthProvider.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements AuthProvider.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken always returns the same token.
type StaticToken string

// Token implements AuthProvider.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Anonymous never returns a token.
var Anonymous AuthProvider = StaticToken("")

// OAuth2 adapts an oauth2.TokenSource, such as one produced by a session SDK,
// to AuthProvider. A nil token from the source is treated as unauthenticated.
func OAuth2(src oauth2.TokenSource) AuthProvider {
	return TokenFunc(func(ctx context.Context) (string, error) {
		if src == nil {
			return "", nil
		}
		tok, err := src.Token()
		if err != nil {
			return "", fmt.Errorf("retrieving oauth2 token: %w", err)
		}
		if tok == nil {
			return "", nil
		}
		return tok.AccessToken, nil
	})
}
