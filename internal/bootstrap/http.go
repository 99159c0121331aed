package bootstrap

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"github.com/stepcontest/contest-admin/config"
)

// NewHTTPClient builds the transport used by the admin API envelope.
// Cookies are kept per registrable domain so a backend that pairs the bearer
// token with a sticky-session cookie keeps working across calls.
func NewHTTPClient(cfg config.APIConfig) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		//nolint:gosec // opt-in for development backends with self-signed certificates.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &http.Client{
		Jar:       jar,
		Timeout:   cfg.Timeout,
		Transport: transport,
	}, nil
}
