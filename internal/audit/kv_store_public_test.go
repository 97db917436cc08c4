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
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/sitegate-io/sitegate/internal/audit"
)

// fakeKV implements the subset of jetstream.KeyValue the store touches; the
// embedded interface covers the rest.
type fakeKV struct {
	jetstream.KeyValue

	mu      sync.Mutex
	data    map[string][]byte
	failPut bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Put(
	_ context.Context,
	key string,
	value []byte,
) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failPut {
		return 0, fmt.Errorf("kv unavailable")
	}
	f.data[key] = value

	return uint64(len(f.data)), nil
}

func (f *fakeKV) Get(
	_ context.Context,
	key string,
) (jetstream.KeyValueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	return fakeKVEntry{key: key, value: value}, nil
}

func (f *fakeKV) Keys(
	_ context.Context,
	_ ...jetstream.WatchOpt,
) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.data) == 0 {
		return nil, jetstream.ErrNoKeysFound
	}

	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

type fakeKVEntry struct {
	jetstream.KeyValueEntry

	key   string
	value []byte
}

func (e fakeKVEntry) Value() []byte { return e.value }

type KVStorePublicTestSuite struct {
	suite.Suite

	kv    *fakeKV
	store *audit.KVStore
}

func (s *KVStorePublicTestSuite) SetupTest() {
	s.kv = newFakeKV()
	s.store = audit.NewKVStore(newTestLogger(), s.kv)
}

func (s *KVStorePublicTestSuite) newEntry(
	ts time.Time,
) audit.Entry {
	return audit.Entry{
		ID:        audit.NewEntryID(ts),
		Timestamp: ts,
		Action:    audit.ActionCreate,
		Resource:  "announcement",
		SourceIP:  "203.0.113.7",
		Severity:  audit.SeverityMedium,
	}
}

func (s *KVStorePublicTestSuite) TestWriteAndGetRoundTrip() {
	entry := s.newEntry(time.Now().UTC())

	s.Require().NoError(s.store.Write(context.Background(), entry))

	got, err := s.store.Get(context.Background(), entry.ID)
	s.Require().NoError(err)
	s.Equal(entry.Action, got.Action)
	s.Equal(entry.Resource, got.Resource)
	s.Equal(entry.SourceIP, got.SourceIP)
}

func (s *KVStorePublicTestSuite) TestWritePropagatesStoreErrors() {
	s.kv.failPut = true

	err := s.store.Write(context.Background(), s.newEntry(time.Now().UTC()))
	s.Error(err)
}

func (s *KVStorePublicTestSuite) TestGetUnknownID() {
	_, err := s.store.Get(context.Background(), "missing")
	s.Error(err)
}

func (s *KVStorePublicTestSuite) TestListNewestFirstWithPagination() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		entry := s.newEntry(base.Add(time.Duration(i) * time.Second))
		s.Require().NoError(s.store.Write(context.Background(), entry))
	}

	page, total, err := s.store.List(context.Background(), 2, 0)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Require().Len(page, 2)
	s.True(page[0].Timestamp.After(page[1].Timestamp))

	page, total, err = s.store.List(context.Background(), 2, 4)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Len(page, 1)

	page, total, err = s.store.List(context.Background(), 2, 10)
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Empty(page)
}

func (s *KVStorePublicTestSuite) TestListEmptyBucket() {
	page, total, err := s.store.List(context.Background(), 10, 0)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(page)
}

func TestKVStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(KVStorePublicTestSuite))
}
