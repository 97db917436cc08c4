// Copyright (c) 2026 John Dewey

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

package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/config"
)

type ConfigPublicTestSuite struct {
	suite.Suite
}

func (s *ConfigPublicTestSuite) TestValidate() {
	tests := []struct {
		name        string
		config      config.Config
		expectError bool
		errContains string
	}{
		{
			name: "valid config",
			config: config.Config{
				API: config.API{
					Client: config.Client{
						Security: config.ClientSecurity{
							BearerToken: "test-bearer-token",
						},
					},
					Server: config.Server{
						Security: config.ServerSecurity{
							SigningKey: "test-signing-key",
						},
					},
				},
			},
			expectError: false,
		},
		{
			name: "missing signing key",
			config: config.Config{
				API: config.API{
					Client: config.Client{
						Security: config.ClientSecurity{
							BearerToken: "test-bearer-token",
						},
					},
					Server: config.Server{
						Security: config.ServerSecurity{
							SigningKey: "",
						},
					},
				},
			},
			expectError: true,
			errContains: "SigningKey",
		},
		{
			name: "missing bearer token",
			config: config.Config{
				API: config.API{
					Client: config.Client{
						Security: config.ClientSecurity{
							BearerToken: "",
						},
					},
					Server: config.Server{
						Security: config.ServerSecurity{
							SigningKey: "test-signing-key",
						},
					},
				},
			},
			expectError: true,
			errContains: "BearerToken",
		},
		{
			name:        "missing both required fields",
			config:      config.Config{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := config.Validate(&tt.config)

			if tt.expectError {
				s.Error(err)
				if tt.errContains != "" {
					s.Contains(err.Error(), tt.errContains)
				}
			} else {
				s.NoError(err)
			}
		})
	}
}

func (s *ConfigPublicTestSuite) TestMasked() {
	cfg := config.Config{
		API: config.API{
			Server: config.Server{
				Security: config.ServerSecurity{
					SigningKey: "super-secret-signing-key",
				},
			},
		},
	}

	masked, err := config.Masked(&cfg)

	s.Require().NoError(err)
	s.Require().NotNil(masked)

	out, err := json.Marshal(masked)
	s.Require().NoError(err)
	s.NotContains(string(out), "super-secret-signing-key")
}

func (s *ConfigPublicTestSuite) TestSetDefaults() {
	tests := []struct {
		name         string
		yaml         string
		wantFailOpen bool
	}{
		{
			name:         "when fail_open is unset defaults to open",
			yaml:         "turnstile:\n  secret: test-secret\n",
			wantFailOpen: true,
		},
		{
			name:         "when fail_open is false stays closed",
			yaml:         "turnstile:\n  secret: test-secret\n  fail_open: false\n",
			wantFailOpen: false,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			v := viper.New()
			v.SetConfigType("yaml")
			config.SetDefaults(v)

			s.Require().NoError(v.ReadConfig(strings.NewReader(tt.yaml)))

			var cfg config.Config
			s.Require().NoError(v.Unmarshal(&cfg))
			s.Equal(tt.wantFailOpen, cfg.Turnstile.FailOpen)
		})
	}
}

func TestConfigPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigPublicTestSuite))
}
