package services

import (
	"context"
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

func TestRelationshipService_Update_ChangesType(t *testing.T) {
	var requests atomic.Int64
	repo, _ := setupStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, "tok", time.Second)
	engine := syncer.New(client, repo, testLogger())
	s := NewRelationshipService(client, repo, engine, testLogger(), offline)
	ctx := context.Background()

	require.True(t, s.Create(ctx, models.Relationship{
		ContactIs: 1, OfContact: 2, RelationshipTypeID: 4,
	}), s.ErrorMessage)
	require.Len(t, s.Items, 1)

	edited := s.Items[0].Relationship
	edited.RelationshipTypeID = 9
	require.True(t, s.Update(ctx, s.Items[0].Record.LocalID, edited), s.ErrorMessage)

	assert.Zero(t, requests.Load())
	require.Len(t, s.Items, 1)
	assert.Equal(t, int64(9), s.Items[0].Relationship.RelationshipTypeID)
	assert.Equal(t, int64(1), s.Items[0].Relationship.ContactIs)
	assert.Equal(t, int64(2), s.Items[0].Relationship.OfContact)
	assert.Equal(t, models.SyncStatusPending, s.Items[0].Record.SyncStatus)
}
