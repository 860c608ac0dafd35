package selfserve

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestSettingsLifecycle(t *testing.T) {
	s := NewSettings()
	assert.False(t, s.IsConfigured())

	_, err := s.Config()
	require.ErrorIs(t, err, ErrNotConfigured)
	_, err = s.AuthProvider()
	require.ErrorIs(t, err, ErrNotConfigured)

	s.Set(Config{BaseURL: "http://first"})
	s.Set(Config{BaseURL: "http://second", Auth: StaticToken("t")})
	assert.True(t, s.IsConfigured())

	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, "http://second", cfg.BaseURL)

	auth, err := s.AuthProvider()
	require.NoError(t, err)
	tok, err := auth.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t", tok)
}

func TestSettingsNilAuthIsAnonymous(t *testing.T) {
	auth, err := NewSettingsWith(Config{BaseURL: "http://h"}).AuthProvider()
	require.NoError(t, err)
	tok, err := auth.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSettingsNilReceiver(t *testing.T) {
	var s *Settings
	assert.False(t, s.IsConfigured())
	_, err := s.Config()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSettingsConcurrentAccess(t *testing.T) {
	s := NewSettingsWith(Config{BaseURL: "http://h"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(Config{BaseURL: "http://h"})
		}()
		go func() {
			defer wg.Done()
			cfg, err := s.Config()
			assert.NoError(t, err)
			assert.Equal(t, "http://h", cfg.BaseURL)
		}()
	}
	wg.Wait()
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"localhost", "http://localhost:8080", false},
		{"https", "https://api.selfserve.example", false},
		{"empty", "", true},
		{"no scheme", "localhost:8080", true},
		{"ftp", "ftp://files.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{BaseURL: tt.baseURL}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthProviders(t *testing.T) {
	ctx := context.Background()

	tok, err := StaticToken("abc").Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = Anonymous.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	fnErr := errors.New("no session")
	_, err = TokenFunc(func(context.Context) (string, error) { return "", fnErr }).Token(ctx)
	assert.ErrorIs(t, err, fnErr)
}

type failingTokenSource struct{ err error }

func (f failingTokenSource) Token() (*oauth2.Token, error) { return nil, f.err }

func TestOAuth2Provider(t *testing.T) {
	ctx := context.Background()

	tok, err := OAuth2(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "clerk-jwt"})).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "clerk-jwt", tok)

	tok, err = OAuth2(nil).Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	srcErr := errors.New("refresh failed")
	_, err = OAuth2(failingTokenSource{err: srcErr}).Token(ctx)
	assert.ErrorIs(t, err, srcErr)
}
