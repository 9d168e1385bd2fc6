package races

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"election-results/core/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubFetcher struct {
	date  string
	feeds *feed.Feeds
	err   error
	calls atomic.Int32
}

func (s *stubFetcher) ElectionDate() string { return s.date }

func (s *stubFetcher) FetchFeeds(ctx context.Context) (*feed.Feeds, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.feeds, nil
}

func newStubFetcher(t *testing.T) *stubFetcher {
	badProgress := `{"statePostal":"NC","stateName":"North Carolina","lastUpdated":"2024-11-05T20:00:00",
		"precinctsReporting":1,"precinctsTotal":2,"precinctsReportingPct":50,"candidates":[{"candidateID":"zz","voteCount":1,"votePct":1}]}`
	return &stubFetcher{
		date: "2024-11-05",
		feeds: &feed.Feeds{
			Progress: parseDoc(t, `{"2024-X-1": `+governorProgress+`, "2024-X-2": `+badProgress+`}`),
			Metadata: parseDoc(t, `{"2024-X-1": `+governorMetadata+`, "2024-X-2": `+governorMetadata+`}`),
		},
	}
}

func TestService_Fetch(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fetcher := newStubFetcher(t)
	svc := NewService(fetcher, time.Minute, zap.New(core))

	snap, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-11-05", snap.ElectionDate)
	assert.Equal(t, 1, snap.Results.Total())
	require.Len(t, snap.Results.Failures, 1)

	entries := logs.FilterField(zap.String("race_id", "2024-X-2")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Failed to reconcile race", entries[0].Message)
}

func TestService_CurrentIsCached(t *testing.T) {
	fetcher := newStubFetcher(t)
	svc := NewService(fetcher, time.Minute, zap.NewNop())

	first, err := svc.Current(context.Background())
	require.NoError(t, err)
	second, err := svc.Current(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), fetcher.calls.Load())

	svc.Invalidate()
	_, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), fetcher.calls.Load())
}

func TestService_FetchError(t *testing.T) {
	fetcher := &stubFetcher{date: "2024-11-05", err: errors.New("upstream down")}
	svc := NewService(fetcher, 0, nil)

	_, err := svc.Current(context.Background())
	assert.ErrorContains(t, err, "upstream down")
}
