// Copyright (c) 2024 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package captcha verifies Cloudflare Turnstile tokens against the
// siteverify endpoint. Provider failures follow a configurable fail-open
// policy: the rate limiter, honeypot, and origin checks still provide
// defense in depth when verification degrades.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the Turnstile siteverify URL.
const DefaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// defaultTimeout bounds the outbound verification call.
const defaultTimeout = 5 * time.Second

// Verifier calls the Turnstile siteverify endpoint.
type Verifier struct {
	secret   string
	endpoint string
	failOpen bool
	client   *http.Client
	logger   *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithEndpoint overrides the siteverify URL. Used by tests.
func WithEndpoint(
	endpoint string,
) Option {
	return func(v *Verifier) {
		v.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(
	client *http.Client,
) Option {
	return func(v *Verifier) {
		v.client = client
	}
}

// New creates a Verifier. An empty secret disables verification entirely:
// every token passes, which keeps environments without Turnstile
// provisioning working.
func New(
	logger *slog.Logger,
	secret string,
	failOpen bool,
	opts ...Option,
) *Verifier {
	v := &Verifier{
		secret:   secret,
		endpoint: DefaultEndpoint,
		failOpen: failOpen,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.secret == "" {
		logger.Warn("turnstile secret not configured, captcha verification disabled")
	}

	return v
}

// siteverifyResponse is the provider's verdict payload.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a client-supplied token. With no secret configured it always
// returns true. With a secret and no token it returns false without a
// network call. Provider or transport failures return the fail-open policy.
func (v *Verifier) Verify(
	ctx context.Context,
	token string,
	remoteIP string,
) bool {
	if v.secret == "" {
		return true
	}

	if token == "" {
		return false
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	if remoteIP != "" && remoteIP != "unknown" {
		form.Set("remoteip", remoteIP)
	}

	verdict, err := v.post(ctx, form)
	if err != nil {
		v.logger.Warn(
			"turnstile verification failed",
			slog.String("error", err.Error()),
			slog.Bool("fail_open", v.failOpen),
		)

		return v.failOpen
	}

	if !verdict.Success {
		v.logger.Info(
			"turnstile rejected token",
			slog.String("error_codes", strings.Join(verdict.ErrorCodes, ",")),
		)
	}

	return verdict.Success
}

func (v *Verifier) post(
	ctx context.Context,
	form url.Values,
) (*siteverifyResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("building siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling siteverify: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var verdict siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("decoding siteverify response: %w", err)
	}

	return &verdict, nil
}
