package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	var gotUA, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522"}]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-agent/1.0")
	coords, err := c.Search(context.Background(), "Paris")

	require.NoError(t, err)
	assert.InDelta(t, 48.8566, coords.Lat, 0.0001)
	assert.InDelta(t, 2.3522, coords.Lon, 0.0001)
	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, "Paris", gotQuery)
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-agent/1.0")
	_, err := c.Search(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(server.URL, "test-agent/1.0")
	_, err := c.Search(context.Background(), "Paris")

	require.Error(t, err)
}

func TestReversePicksMostSpecific(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "City wins over country",
			body: `{"address":{"city":"Kyoto","country":"Japan"}}`,
			want: "Kyoto",
		},
		{
			name: "Falls through to country",
			body: `{"address":{"country":"Japan"}}`,
			want: "Japan",
		},
		{
			name: "Town beats state",
			body: `{"address":{"town":"Aspen","state":"Colorado"}}`,
			want: "Aspen",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := New(server.URL, "test-agent/1.0")
			got, err := c.Reverse(context.Background(), 35.0, 135.7)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReverseEmptyAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{}}`))
	}))
	defer server.Close()

	c := New(server.URL, "test-agent/1.0")
	_, err := c.Reverse(context.Background(), 0, 0)

	assert.ErrorIs(t, err, ErrNoResults)
}

func TestBatchSkipsFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("q") == "Nowhere" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"lat":"1.5","lon":"2.5"}]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-agent/1.0")
	c.stagger = 0

	out := c.Batch(context.Background(), []string{"Rome", "Nowhere", "Kyoto"})

	assert.Equal(t, int64(3), calls.Load())
	require.Len(t, out, 2)
	names := []string{out[0].Name, out[1].Name}
	assert.ElementsMatch(t, []string{"Rome", "Kyoto"}, names)
}

func TestBatchHonorsCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-agent/1.0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := c.Batch(ctx, []string{"Rome", "Kyoto"})

	assert.Empty(t, out)
}
