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

package captcha_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/captcha"
)

type TurnstilePublicTestSuite struct {
	suite.Suite
}

func (s *TurnstilePublicTestSuite) newProvider(
	status int,
	body string,
	calls *atomic.Int32,
) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		s.NoError(r.ParseForm())
		s.NotEmpty(r.PostForm.Get("secret"))
		s.NotEmpty(r.PostForm.Get("response"))

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func (s *TurnstilePublicTestSuite) TestVerifyWithoutSecretAlwaysPasses() {
	var calls atomic.Int32
	provider := s.newProvider(http.StatusOK, `{"success":false}`, &calls)
	defer provider.Close()

	v := captcha.New(newTestLogger(), "", false, captcha.WithEndpoint(provider.URL))

	s.True(v.Verify(context.Background(), "anything", "203.0.113.7"))
	s.True(v.Verify(context.Background(), "", ""))
	s.Zero(calls.Load(), "no network call without a secret")
}

func (s *TurnstilePublicTestSuite) TestVerifyMissingTokenRejectsWithoutCall() {
	var calls atomic.Int32
	provider := s.newProvider(http.StatusOK, `{"success":true}`, &calls)
	defer provider.Close()

	v := captcha.New(newTestLogger(), "secret", true, captcha.WithEndpoint(provider.URL))

	s.False(v.Verify(context.Background(), "", "203.0.113.7"))
	s.Zero(calls.Load())
}

func (s *TurnstilePublicTestSuite) TestVerifyReturnsProviderVerdict() {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "provider accepts", body: `{"success":true}`, want: true},
		{name: "provider rejects", body: `{"success":false,"error-codes":["invalid-input-response"]}`, want: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var calls atomic.Int32
			provider := s.newProvider(http.StatusOK, tt.body, &calls)
			defer provider.Close()

			v := captcha.New(newTestLogger(), "secret", false, captcha.WithEndpoint(provider.URL))

			s.Equal(tt.want, v.Verify(context.Background(), "token", "203.0.113.7"))
			s.Equal(int32(1), calls.Load())
		})
	}
}

func (s *TurnstilePublicTestSuite) TestVerifyProviderFailureFollowsPolicy() {
	tests := []struct {
		name     string
		status   int
		body     string
		failOpen bool
		want     bool
	}{
		{name: "server error fails open", status: http.StatusBadGateway, body: "", failOpen: true, want: true},
		{name: "server error fails closed", status: http.StatusBadGateway, body: "", failOpen: false, want: false},
		{name: "malformed body fails open", status: http.StatusOK, body: "{", failOpen: true, want: true},
		{name: "malformed body fails closed", status: http.StatusOK, body: "{", failOpen: false, want: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var calls atomic.Int32
			provider := s.newProvider(tt.status, tt.body, &calls)
			defer provider.Close()

			v := captcha.New(newTestLogger(), "secret", tt.failOpen, captcha.WithEndpoint(provider.URL))

			s.Equal(tt.want, v.Verify(context.Background(), "token", "203.0.113.7"))
		})
	}
}

func (s *TurnstilePublicTestSuite) TestVerifyUnreachableProviderFollowsPolicy() {
	v := captcha.New(
		newTestLogger(),
		"secret",
		false,
		captcha.WithEndpoint("http://127.0.0.1:1/siteverify"),
	)

	s.False(v.Verify(context.Background(), "token", ""))
}

func TestTurnstilePublicTestSuite(t *testing.T) {
	suite.Run(t, new(TurnstilePublicTestSuite))
}
