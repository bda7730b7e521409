package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverCounts(t *testing.T) {
	m := New()

	m.PageFetched("p1", 20, 300*time.Millisecond, nil)
	m.PageFetched("p2", 0, time.Second, errors.New("boom"))
	m.DetailFetched("d1", 10*time.Millisecond, nil)
	m.DetailFetched("d2", 10*time.Millisecond, nil)
	m.DetailFetched("d3", 10*time.Millisecond, errors.New("boom"))
	m.SetItemsLoaded(40)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageFetches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pageFetches.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.detailFetches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.detailFetches.WithLabelValues("error")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.itemsLoaded))
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.PageFetched("p1", 20, 300*time.Millisecond, nil)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bestiary_page_fetch_total{result="ok"} 1`)
	assert.Contains(t, string(body), "bestiary_fetch_duration_seconds_bucket")
}
