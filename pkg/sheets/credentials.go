package sheets

import (
	"context"
	"encoding/json"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// SpreadsheetScope is the OAuth scope required to read and write the
// volume sheet.
const SpreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// Credentials holds an authorized-user refresh token and its client.
// The JSON layout matches a stored tokens file.
type Credentials struct {
	RefreshToken string   `json:"refresh_token"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	TokenURI     string   `json:"token_uri,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
}

func (c Credentials) complete() bool {
	return c.RefreshToken != "" && c.ClientID != "" && c.ClientSecret != ""
}

// CredentialSource yields credentials from one configured place.
type CredentialSource interface {
	// Name identifies the source in logs.
	Name() string
	Load() (Credentials, error)
}

// StaticSource serves credentials handed in at construction, typically
// gathered from the environment.
type StaticSource struct {
	creds Credentials
}

// NewStaticSource creates a StaticSource over the given credentials.
func NewStaticSource(creds Credentials) *StaticSource {
	return &StaticSource{creds: creds}
}

func (s *StaticSource) Name() string { return "environment" }

func (s *StaticSource) Load() (Credentials, error) {
	if !s.creds.complete() {
		return Credentials{}, NewCredentialError("refresh token, client id and client secret are all required", nil)
	}
	return s.creds, nil
}

// FileSource reads credentials from a tokens file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "tokens file" }

func (s *FileSource) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, NewCredentialError("read tokens file "+s.path, err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, NewCredentialError("parse tokens file "+s.path, err)
	}
	if !creds.complete() {
		return Credentials{}, NewCredentialError("tokens file "+s.path+" is missing refresh_token, client_id or client_secret", nil)
	}
	return creds, nil
}

// ResolveSource picks the credential source: environment credentials
// when all three values are set, the tokens file when it exists, and a
// CredentialError naming both options otherwise.
func ResolveSource(env Credentials, tokensFile string) (CredentialSource, error) {
	if env.complete() {
		return NewStaticSource(env), nil
	}
	if _, err := os.Stat(tokensFile); err == nil {
		return NewFileSource(tokensFile), nil
	}
	return nil, NewCredentialError(
		"no credentials found: set GOOGLE_REFRESH_TOKEN, GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET, or create "+tokensFile, nil)
}

// TokenSource builds an auto-refreshing token source from the
// credentials and performs one refresh up front, so a revoked or
// mistyped refresh token fails before any sheet traffic.
func TokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	endpoint := google.Endpoint
	if creds.TokenURI != "" {
		endpoint = oauth2.Endpoint{TokenURL: creds.TokenURI}
	}
	scopes := creds.Scopes
	if len(scopes) == 0 {
		scopes = []string{SpreadsheetScope}
	}

	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}

	ts := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	tok, err := ts.Token()
	if err != nil {
		return nil, NewCredentialError("refresh access token", err)
	}

	return oauth2.ReuseTokenSource(tok, ts), nil
}
