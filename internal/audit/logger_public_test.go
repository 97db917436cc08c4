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

package audit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/audit"
	"github.com/sitegate-io/sitegate/internal/audit/mocks"
)

type LoggerPublicTestSuite struct {
	suite.Suite

	store *recordingStore
}

func (s *LoggerPublicTestSuite) SetupTest() {
	s.store = &recordingStore{}
}

func (s *LoggerPublicTestSuite) TestDefaultSeverity() {
	tests := []struct {
		action audit.Action
		want   audit.Severity
	}{
		{action: audit.ActionSuspiciousActivity, want: audit.SeverityCritical},
		{action: audit.ActionDelete, want: audit.SeverityHigh},
		{action: audit.ActionPasswordChange, want: audit.SeverityHigh},
		{action: audit.ActionSettingsChange, want: audit.SeverityHigh},
		{action: audit.ActionCreate, want: audit.SeverityMedium},
		{action: audit.ActionUpdate, want: audit.SeverityMedium},
		{action: audit.ActionLogin, want: audit.SeverityLow},
		{action: audit.ActionExport, want: audit.SeverityLow},
	}

	for _, tt := range tests {
		s.Run(string(tt.action), func() {
			s.Equal(tt.want, audit.DefaultSeverity(tt.action))
		})
	}
}

func (s *LoggerPublicTestSuite) TestLogBuffersLowSeverity() {
	l := audit.NewLogger(newTestLogger(), s.store)

	l.Log(context.Background(), audit.Entry{
		Action:   audit.ActionLogin,
		Resource: "session",
		SourceIP: "203.0.113.7",
	})

	s.Equal(1, l.Pending())
	s.Empty(s.store.written())
}

func (s *LoggerPublicTestSuite) TestLogFlushesHighSeverityImmediately() {
	l := audit.NewLogger(newTestLogger(), s.store)

	l.Log(context.Background(), audit.Entry{
		Action:   audit.ActionDelete,
		Resource: "announcement",
		SourceIP: "203.0.113.7",
	})

	s.Zero(l.Pending())

	written := s.store.written()
	s.Require().Len(written, 1)
	s.Equal(audit.SeverityHigh, written[0].Severity)
	s.NotEmpty(written[0].ID)
	s.False(written[0].Timestamp.IsZero())
}

func (s *LoggerPublicTestSuite) TestLogFlushesWhenBufferFills() {
	l := audit.NewLogger(newTestLogger(), s.store, audit.WithBufferSize(3))

	for i := 0; i < 2; i++ {
		l.Log(context.Background(), audit.Entry{
			Action:   audit.ActionLogin,
			Resource: "session",
		})
	}
	s.Equal(2, l.Pending())

	l.Log(context.Background(), audit.Entry{
		Action:   audit.ActionLogin,
		Resource: "session",
	})

	s.Zero(l.Pending())
	s.Len(s.store.written(), 3)
}

func (s *LoggerPublicTestSuite) TestStopDrainsBuffer() {
	l := audit.NewLogger(
		newTestLogger(),
		s.store,
		audit.WithFlushInterval(time.Hour),
	)
	l.Start()

	l.Log(context.Background(), audit.Entry{
		Action:   audit.ActionLogout,
		Resource: "session",
	})
	s.Equal(1, l.Pending())

	l.Stop(context.Background())

	s.Zero(l.Pending())
	s.Len(s.store.written(), 1)
}

func (s *LoggerPublicTestSuite) TestAlertRecordsSuspiciousActivity() {
	l := audit.NewLogger(newTestLogger(), s.store)

	l.Alert(context.Background(), audit.Alert{
		Type:     audit.AlertHoneypot,
		SourceIP: "203.0.113.7",
		Details:  "honeypot field filled",
		Path:     "/api/contact",
	})

	written := s.store.written()
	s.Require().Len(written, 1)
	s.Equal(audit.ActionSuspiciousActivity, written[0].Action)
	s.Equal("security_alert", written[0].Resource)
	s.Equal(string(audit.AlertHoneypot), written[0].ResourceID)
	s.Equal(audit.SeverityCritical, written[0].Severity)
	s.Contains(written[0].Details, "path=/api/contact")
}

func (s *LoggerPublicTestSuite) TestFlushSurvivesStoreErrors() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().
		Write(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("sink unavailable")).
		Times(2)

	l := audit.NewLogger(newTestLogger(), mockStore, audit.WithBufferSize(2))

	l.Log(context.Background(), audit.Entry{Action: audit.ActionLogin, Resource: "session"})
	l.Log(context.Background(), audit.Entry{Action: audit.ActionLogin, Resource: "session"})

	// Entries are dropped, not retried; the logger stays usable.
	s.Zero(l.Pending())
}

func (s *LoggerPublicTestSuite) TestEntryIDsSortChronologically() {
	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Millisecond)

	id1 := audit.NewEntryID(t1)
	id2 := audit.NewEntryID(t2)

	s.Less(id1, id2)
}

func TestLoggerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerPublicTestSuite))
}
