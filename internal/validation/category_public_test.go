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

package validation_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/validation"
)

type CategoryPublicTestSuite struct {
	suite.Suite
}

func (s *CategoryPublicTestSuite) SetupTest() {
	validation.RegisterCategoryValidator([]string{"auth", "contact", "public"})
}

func (s *CategoryPublicTestSuite) TestValidCategory() {
	type override struct {
		Category string `validate:"valid_category"`
	}

	tests := []struct {
		name     string
		category string
		wantOK   bool
		contains []string
	}{
		{
			name:     "when known category",
			category: "auth",
			wantOK:   true,
		},
		{
			name:     "when unknown category",
			category: "uploads",
			wantOK:   false,
			contains: []string{"valid_category", `rate limit category "uploads" not known`},
		},
		{
			name:     "when empty category",
			category: "",
			wantOK:   false,
			contains: []string{"valid_category"},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			errMsg, ok := validation.Struct(override{Category: tt.category})
			s.Equal(tt.wantOK, ok)

			if !ok {
				for _, c := range tt.contains {
					s.Contains(errMsg, c)
				}
			}
		})
	}
}

func TestCategoryPublicTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryPublicTestSuite))
}
