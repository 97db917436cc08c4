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

package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sitegate-io/sitegate/internal/authtoken"
	"github.com/sitegate-io/sitegate/internal/netid"
	"github.com/sitegate-io/sitegate/internal/validation"
)

type twoFactorRequest struct {
	Action         string `json:"action"         validate:"required,oneof=request verify"`
	Email          string `json:"email"          validate:"omitempty,email"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challengeToken"`
	Code           string `json:"code"`
}

// handleTwoFactor drives the two step login flow. The "request" action
// checks credentials and emails a one time code; the "verify" action
// exchanges the code for a bearer token.
func (s *Server) handleTwoFactor(
	c echo.Context,
) error {
	var req twoFactorRequest
	if err := c.Bind(&req); err != nil {
		return s.validationError(c, "malformed request body")
	}

	if msg, ok := validation.Struct(req); !ok {
		return s.validationError(c, msg)
	}

	switch req.Action {
	case "request":
		return s.twoFactorRequest(c, req)
	case "verify":
		return s.twoFactorVerify(c, req)
	default:
		return s.validationError(c, "unknown action")
	}
}

// invalidCredentials is deliberately identical for bad emails, bad
// passwords, and bad codes so the response leaks nothing.
func invalidCredentials(
	c echo.Context,
) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error": "Invalid credentials",
	})
}

func (s *Server) twoFactorRequest(
	c echo.Context,
	req twoFactorRequest,
) error {
	if req.Email == "" || req.Password == "" {
		return s.validationError(c, "email and password are required")
	}

	ip := netid.ResolveClientIP(c.Request().Header)

	if s.authFn == nil || !s.authFn.Authenticate(req.Email, req.Password) {
		if s.loginTracker != nil {
			s.loginTracker.RecordFailure(c.Request().Context(), ip, req.Email)
		}

		return invalidCredentials(c)
	}

	challengeToken, err := s.twoFactor.Issue(c.Request().Context(), req.Email)
	if err != nil {
		s.logger.Error(
			"failed to issue two-factor challenge",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to start verification",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"challengeToken": challengeToken,
	})
}

func (s *Server) twoFactorVerify(
	c echo.Context,
	req twoFactorRequest,
) error {
	if req.ChallengeToken == "" || req.Code == "" {
		return s.validationError(c, "challengeToken and code are required")
	}

	ip := netid.ResolveClientIP(c.Request().Header)

	email, err := s.twoFactor.Verify(c.Request().Context(), req.ChallengeToken, req.Code)
	if err != nil {
		// Verify returns the challenge's email on a known token, so the
		// failure is counted against the account the code was issued for.
		if s.loginTracker != nil && email != "" {
			s.loginTracker.RecordFailure(c.Request().Context(), ip, email)
		}

		return invalidCredentials(c)
	}

	if s.loginTracker != nil {
		s.loginTracker.RecordSuccess(ip, email)
	}

	token, err := authtoken.New(s.logger).Generate(
		s.appConfig.API.Server.Security.SigningKey,
		[]string{"admin"},
		email,
	)
	if err != nil {
		s.logger.Error(
			"failed to generate token",
			slog.String("error", err.Error()),
		)

		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
	})
}
