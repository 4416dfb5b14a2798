package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_HasMorePages_MetaHint(t *testing.T) {
	meta := &Meta{LastPage: 3}

	first := Page[int]{Items: []int{1}, Number: 1, PerPage: 10, Meta: meta}
	assert.True(t, first.HasMorePages(), "page 1 of 3 must report more pages")

	last := Page[int]{Items: []int{1}, Number: 3, PerPage: 10, Meta: meta}
	assert.False(t, last.HasMorePages(), "page 3 of 3 must be the end")
}

func TestPage_HasMorePages_ShortPageHeuristic(t *testing.T) {
	full := Page[int]{Items: []int{1, 2, 3}, Number: 1, PerPage: 3}
	assert.True(t, full.HasMorePages(), "a full page without meta means keep going")

	short := Page[int]{Items: []int{1, 2}, Number: 1, PerPage: 3}
	assert.False(t, short.HasMorePages(), "a short page means the list is exhausted")

	empty := Page[int]{Number: 1, PerPage: 3}
	assert.False(t, empty.HasMorePages())
}

func TestFetchAll_WalksSequentialPages(t *testing.T) {
	pages := map[int]string{
		1: `{"data":[{"id":1},{"id":2}],"meta":{"current_page":1,"last_page":3}}`,
		2: `{"data":[{"id":3},{"id":4}],"meta":{"current_page":2,"last_page":3}}`,
		3: `{"data":[{"id":5}],"meta":{"current_page":3,"last_page":3}}`,
	}
	var requested []int
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		requested = append(requested, page)
		fmt.Fprint(w, pages[page])
	}))

	type item struct {
		ID int64 `json:"id"`
	}
	items, err := fetchAll(context.Background(), func(ctx context.Context, page int) (Page[item], error) {
		return list[item](ctx, c, "/things", page, nil)
	})
	require.NoError(t, err)
	assert.Len(t, items, 5)
	assert.Equal(t, []int{1, 2, 3}, requested)
}

func TestFetchAll_StopsOnError(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	type item struct{}
	_, err := fetchAll(context.Background(), func(ctx context.Context, page int) (Page[item], error) {
		return list[item](ctx, c, "/things", page, nil)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestList_SendsPageAndLimit(t *testing.T) {
	var gotPage, gotLimit string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	c.SetPerPage(25)

	type item struct{}
	_, err := list[item](context.Background(), c, "/things", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "25", gotLimit)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("https://example.org/api/", "", time.Second)
	assert.Equal(t, "https://example.org/api", c.BaseURL())
}
