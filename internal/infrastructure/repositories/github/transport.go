package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

// newAuthenticatedHTTPClient returns a client sending the same credentials on
// every request: a bearer token when one is set, basic auth otherwise.
func newAuthenticatedHTTPClient(credentials entities.Credentials, timeout time.Duration) *http.Client {
	var httpClient *http.Client
	if credentials.Token != "" {
		tokenSource := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: credentials.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), tokenSource)
	} else {
		transport := &gh.BasicAuthTransport{
			Username: credentials.Username,
			Password: credentials.Password,
		}
		httpClient = transport.Client()
	}
	httpClient.Timeout = timeout
	return httpClient
}

// parseBaseURL normalizes the API root so that go-github can resolve
// relative endpoint paths against it.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		raw = entities.DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}

	baseURL, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", raw)
	}
	return baseURL, nil
}

func newClient(httpClient *http.Client, baseURL *url.URL) *gh.Client {
	client := gh.NewClient(httpClient)
	client.BaseURL = baseURL
	return client
}

func newAnonymousHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
