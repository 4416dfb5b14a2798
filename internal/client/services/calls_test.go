package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/monicli/internal/api"
	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/syncer"
)

func newCallService(t *testing.T, handler http.Handler, isOnline func() bool) *CallService {
	t.Helper()
	repo, _ := setupStore(t)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, "tok", time.Second)
	engine := syncer.New(client, repo, testLogger())
	return NewCallService(client, repo, engine, testLogger(), isOnline)
}

func TestCallService_Update_OnlinePushesImmediately(t *testing.T) {
	var puts atomic.Int64
	s := newCallService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts.Add(1)
		}
		fmt.Fprint(w, `{"data":{"id":42}}`)
	}), online)
	ctx := context.Background()

	require.True(t, s.Create(ctx, models.CallLog{
		ContactID: 3, CalledAt: "2026-08-30T10:00:00Z", Content: "quick check-in",
	}), s.ErrorMessage)
	require.Len(t, s.Items, 1)

	edited := s.Items[0].Call
	edited.Content = "quick check-in, they sounded tired"
	ok := s.Update(ctx, s.Items[0].Record.LocalID, edited)
	require.True(t, ok, s.ErrorMessage)
	assert.False(t, s.Loading)
	assert.Equal(t, int64(1), puts.Load())

	require.Len(t, s.Items, 1)
	assert.Equal(t, edited.Content, s.Items[0].Call.Content)
	assert.Equal(t, models.SyncStatusSynced, s.Items[0].Record.SyncStatus)
}

func TestCallService_Update_OfflineStaysQueued(t *testing.T) {
	var requests atomic.Int64
	s := newCallService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}), offline)
	ctx := context.Background()

	require.True(t, s.Create(ctx, models.CallLog{
		ContactID: 3, CalledAt: "2026-08-30T10:00:00Z", Content: "first version",
	}), s.ErrorMessage)

	edited := s.Items[0].Call
	edited.Content = "second version"
	require.True(t, s.Update(ctx, s.Items[0].Record.LocalID, edited), s.ErrorMessage)

	assert.Zero(t, requests.Load())
	require.Len(t, s.Items, 1)
	assert.Equal(t, "second version", s.Items[0].Call.Content)
	assert.Equal(t, models.SyncStatusPending, s.Items[0].Record.SyncStatus)
}
