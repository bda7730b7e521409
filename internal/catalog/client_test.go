package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/bestiary/internal/catalog"
	"github.com/abelbrown/bestiary/internal/catalogstub"
)

func newStub(t *testing.T) (*catalogstub.Server, *httptest.Server) {
	t.Helper()
	stub := catalogstub.New(catalogstub.Starters())
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return stub, srv
}

func TestFetchPageResolvesDetails(t *testing.T) {
	_, srv := newStub(t)
	client := catalog.NewClient()

	page, err := client.FetchPage(context.Background(), catalogstub.FirstPage(srv.URL, 4))
	require.NoError(t, err)

	require.Len(t, page.Items, 4)
	assert.Equal(t, 9, page.Total)
	assert.NotEmpty(t, page.Next)

	first := page.Items[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "bulbasaur", first.Name)
	assert.Contains(t, first.Artwork, "/1.png")
	assert.Equal(t, []catalog.Category{{Name: "grass", Slot: 1}, {Name: "poison", Slot: 2}}, first.Categories)
	assert.Equal(t, catalog.Stat{Name: "hp", Value: 45}, first.Stats[0])
	assert.Equal(t, "razor-wind", first.Moves[0].Name)
}

func TestFetchPageFollowsCursorToEnd(t *testing.T) {
	_, srv := newStub(t)
	client := catalog.NewClient()

	var names []string
	ref := catalogstub.FirstPage(srv.URL, 4)
	pages := 0
	for ref != "" {
		page, err := client.FetchPage(context.Background(), ref)
		require.NoError(t, err)
		for _, it := range page.Items {
			names = append(names, it.Name)
		}
		ref = page.Next
		pages++
		require.LessOrEqual(t, pages, 5, "cursor never exhausted")
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, names, 9)
	assert.Equal(t, "blastoise", names[8])
}

func TestFetchPagePreservesListingOrder(t *testing.T) {
	const n = 6
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":6,"next":null,"results":[`)
		for i := 1; i <= n; i++ {
			if i > 1 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"name":"c%d","url":"%s/detail/%d"}`, i, srv.URL, i)
		}
		fmt.Fprint(w, `]}`)
	})
	mux.HandleFunc("/detail/{id}", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.PathValue("id"), "%d", &id)
		// Earlier items answer last.
		time.Sleep(time.Duration(n-id) * 15 * time.Millisecond)
		fmt.Fprintf(w, `{"id":%d,"name":"c%d"}`, id, id)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	page, err := catalog.NewClient().FetchPage(context.Background(), srv.URL+"/list")
	require.NoError(t, err)
	require.Len(t, page.Items, n)
	for i, it := range page.Items {
		assert.Equal(t, i+1, it.ID)
	}
	assert.Empty(t, page.Next)
}

func TestFetchPageDetailFailureFailsWholePage(t *testing.T) {
	stub, srv := newStub(t)
	stub.FailDetail(3, http.StatusInternalServerError)

	page, err := catalog.NewClient().FetchPage(context.Background(), catalogstub.FirstPage(srv.URL, 4))
	require.Error(t, err)
	assert.Empty(t, page.Items, "no partial page on failure")
	assert.True(t, errors.Is(err, catalog.ErrNetwork))

	var netErr *catalog.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "detail", netErr.Op)
	assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
}

func TestFetchPageListFailure(t *testing.T) {
	stub, srv := newStub(t)
	stub.FailList(http.StatusServiceUnavailable)

	_, err := catalog.NewClient().FetchPage(context.Background(), catalogstub.FirstPage(srv.URL, 4))
	var netErr *catalog.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "list", netErr.Op)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
}

func TestFetchPageMalformedBodies(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		detail string
		op     string
	}{
		{"list not json", `<html>`, `{}`, "list"},
		{"detail not json", `{"count":1,"next":null,"results":[{"name":"x","url":"/d"}]}`, `nope`, "detail"},
		{"detail missing id", `{"count":1,"next":null,"results":[{"name":"x","url":"/d"}]}`, `{"name":"x"}`, "detail"},
		{"detail missing name", `{"count":1,"next":null,"results":[{"name":"x","url":"/d"}]}`, `{"id":1}`, "detail"},
		{"entry missing url", `{"count":1,"next":null,"results":[{"name":"x"}]}`, `{}`, "list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, tt.list) })
			mux.HandleFunc("/d", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, tt.detail) })
			srv := httptest.NewServer(mux)
			defer srv.Close()

			_, err := catalog.NewClient().FetchPage(context.Background(), srv.URL+"/list")
			var netErr *catalog.NetworkError
			require.ErrorAs(t, err, &netErr)
			assert.Equal(t, tt.op, netErr.Op)
		})
	}
}

func TestFetchPageMissingArtwork(t *testing.T) {
	items := catalogstub.Starters()[:1]
	items[0].Artwork = ""
	srv := httptest.NewServer(catalogstub.New(items))
	defer srv.Close()

	page, err := catalog.NewClient().FetchPage(context.Background(), catalogstub.FirstPage(srv.URL, 20))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Empty(t, page.Items[0].Artwork)
	assert.Empty(t, page.Next)
}

func TestFetchPageEmptyRef(t *testing.T) {
	_, err := catalog.NewClient().FetchPage(context.Background(), "")
	assert.ErrorIs(t, err, catalog.ErrNoPageRef)
}

func TestFetchPageConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := catalog.NewClient(catalog.WithTimeout(time.Second)).FetchPage(context.Background(), url+"/list")
	assert.ErrorIs(t, err, catalog.ErrNetwork)
}

func TestFetchPageLatencyRespectsContext(t *testing.T) {
	_, srv := newStub(t)
	client := catalog.NewClient(catalog.WithLatency(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchPage(ctx, catalogstub.FirstPage(srv.URL, 4))
	assert.ErrorIs(t, err, catalog.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchPageDetailConcurrencyLimit(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0
	stub := catalogstub.New(catalogstub.Starters())
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		stub.ServeHTTP(w, r)
		mu.Lock()
		inFlight--
		mu.Unlock()
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	page, err := catalog.NewClient(catalog.WithDetailConcurrency(2)).FetchPage(context.Background(), catalogstub.FirstPage(srv.URL, 9))
	require.NoError(t, err)
	assert.Len(t, page.Items, 9)
	assert.LessOrEqual(t, peak, 2)
}

type recordingObserver struct {
	mu      sync.Mutex
	pages   int
	details int
	errs    int
}

func (r *recordingObserver) PageFetched(ref string, items int, dur time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages++
	if err != nil {
		r.errs++
	}
}

func (r *recordingObserver) DetailFetched(url string, dur time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details++
}

func TestFetchPageNotifiesObservers(t *testing.T) {
	_, srv := newStub(t)
	a, b := &recordingObserver{}, &recordingObserver{}
	client := catalog.NewClient(catalog.WithObserver(catalog.Observers{a, b}))

	_, err := client.FetchPage(context.Background(), catalogstub.FirstPage(srv.URL, 3))
	require.NoError(t, err)

	for _, obs := range []*recordingObserver{a, b} {
		assert.Equal(t, 1, obs.pages)
		assert.Equal(t, 3, obs.details)
		assert.Zero(t, obs.errs)
	}
}

func TestItemHasCategory(t *testing.T) {
	it := catalog.Item{Categories: []catalog.Category{{Name: "fire", Slot: 1}}}
	assert.True(t, it.HasCategory("fire"))
	assert.False(t, it.HasCategory("Fire"))
	assert.False(t, it.HasCategory(""))
}
