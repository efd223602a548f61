package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoInjectsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := New(nil)
	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, defaultUserAgent, gotUA)
}

func TestDoKeepsExplicitUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	c := New(&Config{UserAgent: "ShouldNotBeUsed"})
	req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "Explicit/1.0")

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "Explicit/1.0", gotUA)
}

func TestDoNilRequest(t *testing.T) {
	c := New(nil)
	_, err := c.Do(context.Background(), nil)
	require.Error(t, err)
}

func TestDoAppliesDefaultTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(&Config{DefaultTimeout: 20 * time.Millisecond})
	_, err := c.Get(context.Background(), server.URL)
	require.Error(t, err, "request past the default timeout must fail")
}

func TestAfterResponseHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	c := New(nil)
	var hookStatus int
	c.SetAfterResponseHook(func(_ *http.Request, resp *http.Response, err error) {
		if resp != nil {
			hookStatus = resp.StatusCode
		}
	})

	resp, err := c.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusTeapot, hookStatus)
}
