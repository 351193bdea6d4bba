package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadbook/threadbook"
	"github.com/threadbook/threadbook/http"
)

func TestFetcher_URL(t *testing.T) {
	t.Parallel()

	t.Run("builds the print view URL", func(t *testing.T) {
		t.Parallel()

		f := http.NewFetcher("https://forums.example.com")

		assert.Equal(t, "https://forums.example.com/printthread.php?t=1234567&pp=10000", f.URL(1234567))
	})

	t.Run("honors a custom page size", func(t *testing.T) {
		t.Parallel()

		f := http.NewFetcher("https://forums.example.com", http.WithPageSize(50))

		assert.Equal(t, "https://forums.example.com/printthread.php?t=42&pp=50", f.URL(42))
	})
}

func TestFetcher_FetchThread(t *testing.T) {
	t.Parallel()

	t.Run("returns the response body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "/printthread.php", r.URL.Path)
			assert.Equal(t, "42", r.URL.Query().Get("t"))
			assert.Equal(t, "10000", r.URL.Query().Get("pp"))
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
			_, _ = w.Write([]byte("<html>thread</html>"))
		}))
		defer srv.Close()

		f := http.NewFetcher(srv.URL)
		defer f.Close()

		body, err := f.FetchThread(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, "<html>thread</html>", body)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			requests.Add(1)
			w.WriteHeader(nethttp.StatusNotFound)
		}))
		defer srv.Close()

		f := http.NewFetcher(srv.URL, http.WithAttempts(3))
		defer f.Close()

		_, err := f.FetchThread(context.Background(), 42)
		require.Error(t, err)
		assert.Equal(t, threadbook.EUNAVAILABLE, threadbook.ErrorCode(err))
		assert.Equal(t, int32(1), requests.Load())
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if requests.Add(1) == 1 {
				w.WriteHeader(nethttp.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte("<html>recovered</html>"))
		}))
		defer srv.Close()

		f := http.NewFetcher(srv.URL, http.WithAttempts(2))
		defer f.Close()

		body, err := f.FetchThread(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, "<html>recovered</html>", body)
		assert.Equal(t, int32(2), requests.Load())
	})

	t.Run("reports exhausted retries as unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusServiceUnavailable)
		}))
		defer srv.Close()

		f := http.NewFetcher(srv.URL, http.WithAttempts(1))
		defer f.Close()

		_, err := f.FetchThread(context.Background(), 42)
		require.Error(t, err)
		assert.Equal(t, threadbook.EUNAVAILABLE, threadbook.ErrorCode(err))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := http.NewFetcher(srv.URL, http.WithAttempts(1))
		defer f.Close()

		_, err := f.FetchThread(ctx, 42)
		require.Error(t, err)
	})
}
