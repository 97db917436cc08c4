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

package cli_test

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/cli"
)

type UITestSuite struct {
	suite.Suite
}

func TestUITestSuite(t *testing.T) {
	suite.Run(t, new(UITestSuite))
}

func captureStdout(
	fn func(),
) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	out, _ := io.ReadAll(r)
	os.Stdout = old

	return string(out)
}

func (suite *UITestSuite) TestFormatAge() {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{
			name: "when days shows days and hours",
			d:    76*time.Hour + 30*time.Minute,
			want: "3d 4h",
		},
		{
			name: "when hours shows hours and minutes",
			d:    12*time.Hour + 30*time.Minute,
			want: "12h 30m",
		},
		{
			name: "when minutes shows minutes",
			d:    45 * time.Minute,
			want: "45m",
		},
		{
			name: "when seconds shows seconds",
			d:    30 * time.Second,
			want: "30s",
		},
		{
			name: "when zero returns empty",
			d:    0,
			want: "",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.FormatAge(tc.d)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestFormatBytes() {
	tests := []struct {
		name string
		b    int
		want string
	}{
		{
			name: "when bytes",
			b:    512,
			want: "512 B",
		},
		{
			name: "when kilobytes",
			b:    5 * 1024,
			want: "5.0 KB",
		},
		{
			name: "when megabytes",
			b:    2 * 1024 * 1024,
			want: "2.0 MB",
		},
		{
			name: "when gigabytes",
			b:    3 * 1024 * 1024 * 1024,
			want: "3.0 GB",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.FormatBytes(tc.b)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestFormatList() {
	tests := []struct {
		name string
		list []string
		want string
	}{
		{
			name: "when empty returns None",
			list: []string{},
			want: "None",
		},
		{
			name: "when single item",
			list: []string{"example.org"},
			want: "example.org",
		},
		{
			name: "when multiple items joined with comma",
			list: []string{"example.org", "example.net"},
			want: "example.org, example.net",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.FormatList(tc.list)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestCalculateColumnWidths() {
	tests := []struct {
		name       string
		headers    []string
		rows       [][]string
		minPadding int
		want       []int
	}{
		{
			name:       "when empty headers returns empty",
			headers:    []string{},
			rows:       [][]string{},
			minPadding: 1,
			want:       []int{},
		},
		{
			name:       "when headers wider than data",
			headers:    []string{"RESOURCE", "IP"},
			rows:       [][]string{{"a", "b"}},
			minPadding: 0,
			want:       []int{8, 2},
		},
		{
			name:       "when data wider than headers adds padding",
			headers:    []string{"ID"},
			rows:       [][]string{{"0123456789"}},
			minPadding: 1,
			want:       []int{12},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.CalculateColumnWidths(tc.headers, tc.rows, tc.minPadding)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestGetMaxLineWidth() {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "when single line",
			text: "hello",
			want: 5,
		},
		{
			name: "when multi-line uses longest",
			text: "short\nmuch longer line\nmid",
			want: 16,
		},
		{
			name: "when empty",
			text: "",
			want: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.GetMaxLineWidth(tc.text)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestSafeString() {
	value := "hello"

	tests := []struct {
		name string
		s    *string
		want string
	}{
		{
			name: "when nil returns empty",
			s:    nil,
			want: "",
		},
		{
			name: "when set returns value",
			s:    &value,
			want: "hello",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.SafeString(tc.s)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestPrintKV() {
	tests := []struct {
		name       string
		pairs      []string
		wantOutput bool
	}{
		{
			name:       "when valid pairs prints output",
			pairs:      []string{"Key", "Value"},
			wantOutput: true,
		},
		{
			name:       "when multiple pairs prints all",
			pairs:      []string{"Name", "test", "Status", "ok"},
			wantOutput: true,
		},
		{
			name:       "when odd number of pairs prints nothing",
			pairs:      []string{"Key"},
			wantOutput: false,
		},
		{
			name:       "when empty prints nothing",
			pairs:      []string{},
			wantOutput: false,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintKV(tc.pairs...)
			})

			if tc.wantOutput {
				assert.NotEmpty(suite.T(), output)
			} else {
				assert.Empty(suite.T(), output)
			}
		})
	}
}

func (suite *UITestSuite) TestPrintCompactTable() {
	tests := []struct {
		name     string
		sections []cli.Section
		contains []string
	}{
		{
			name: "when titled section prints title and headers",
			sections: []cli.Section{
				{
					Title:   "Security Log",
					Headers: []string{"id", "action"},
					Rows:    [][]string{{"e-1", "create"}},
				},
			},
			contains: []string{"Security Log", "ID", "ACTION", "e-1"},
		},
		{
			name: "when untitled section prints headers only",
			sections: []cli.Section{
				{
					Headers: []string{"resource"},
					Rows:    [][]string{{"announcements"}},
				},
			},
			contains: []string{"RESOURCE", "announcements"},
		},
		{
			name: "when multi-line cell flattens to one line",
			sections: []cli.Section{
				{
					Headers: []string{"details"},
					Rows:    [][]string{{"line one\nline two"}},
				},
			},
			contains: []string{"line one line two"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintCompactTable(tc.sections)
			})

			for _, want := range tc.contains {
				assert.Contains(suite.T(), output, want)
			}
		})
	}
}

func (suite *UITestSuite) TestBuildAuditRows() {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	entries := []audit.Entry{
		{
			ID:        "e-1",
			Timestamp: now.Add(-2 * time.Hour),
			Action:    audit.ActionCreate,
			Resource:  "announcements",
			SourceIP:  "203.0.113.5",
			Severity:  audit.SeverityMedium,
		},
		{
			ID:        "e-2",
			Timestamp: now,
			Action:    audit.ActionSuspiciousActivity,
			Resource:  "security_alert",
			SourceIP:  "203.0.113.9",
			Severity:  audit.SeverityHigh,
		},
	}

	rows := cli.BuildAuditRows(entries, now)

	suite.Require().Len(rows, 2)
	suite.Equal(
		[]string{"e-1", "create", "announcements", "medium", "203.0.113.5", "2h 0m"},
		rows[0],
	)
	suite.Equal("now", rows[1][5])
}

func (suite *UITestSuite) TestDisplayAuditEntry() {
	tests := []struct {
		name     string
		entry    audit.Entry
		contains []string
	}{
		{
			name: "when minimal entry",
			entry: audit.Entry{
				ID:       "e-1",
				Action:   audit.ActionCreate,
				Resource: "events",
				SourceIP: "203.0.113.5",
				Severity: audit.SeverityLow,
			},
			contains: []string{"e-1", "events", "203.0.113.5"},
		},
		{
			name: "when entry carries details prints section",
			entry: audit.Entry{
				ID:        "e-2",
				Timestamp: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
				Action:    audit.ActionSuspiciousActivity,
				Resource:  "security_alert",
				UserID:    "admin@example.org",
				SourceIP:  "203.0.113.9",
				Details:   "honeypot field was populated",
				Severity:  audit.SeverityHigh,
			},
			contains: []string{
				"e-2",
				"admin@example.org",
				"Details",
				"honeypot field was populated",
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.DisplayAuditEntry(tc.entry)
			})

			for _, want := range tc.contains {
				assert.Contains(suite.T(), output, want)
			}
		})
	}
}
