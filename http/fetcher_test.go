package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/wpextract"
	wphttp "github.com/fwojciec/wpextract/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the document body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "wpextract/1.0", r.Header.Get("User-Agent"))
			w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer srv.Close()

		f := wphttp.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", html)
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			assert.Equal(t, "custom-agent/2.0", r.Header.Get("User-Agent"))
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		f := wphttp.NewFetcher(wphttp.WithUserAgent("custom-agent/2.0"))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			nethttp.NotFound(w, r)
		}))
		defer srv.Close()

		f := wphttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, wpextract.ENOTFOUND, wpextract.ErrorCode(err))
	})

	t.Run("server error maps to unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusInternalServerError)
		}))
		defer srv.Close()

		f := wphttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, wpextract.EUNAVAILABLE, wpextract.ErrorCode(err))
	})

	t.Run("unreachable host maps to unavailable", func(t *testing.T) {
		t.Parallel()

		f := wphttp.NewFetcher(wphttp.WithTimeout(500 * time.Millisecond))
		defer f.Close()

		_, err := f.Fetch(context.Background(), "http://127.0.0.1:0/")
		require.Error(t, err)
		assert.Equal(t, wpextract.EUNAVAILABLE, wpextract.ErrorCode(err))
	})
}
