// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-notes/internal/platform/constants"
	"github.com/taibuivan/yomira-notes/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-notes/internal/platform/middleware"
	"github.com/taibuivan/yomira-notes/internal/platform/sec"
	"github.com/taibuivan/yomira-notes/internal/platform/session"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusNoContent)
})

func newManager(t *testing.T) (*session.Manager, *session.MemoryStore) {
	t.Helper()

	signer, err := sec.NewCookieSigner("0123456789abcdef0123456789abcdef", constants.SessionIssuer)
	require.NoError(t, err)

	store := session.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return session.NewManager(store, signer, session.Options{TTL: time.Hour}, logger), store
}

/*
TestRequestID verifies generation and propagation of the correlation ID.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 1. Generated when absent
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	// 2. Reused when the client sends a valid one
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "018f3c2e-7a41-7cc1-9a9e-3f1f2b8c9d10")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "018f3c2e-7a41-7cc1-9a9e-3f1f2b8c9d10", seen)

	// 3. Replaced when the client sends garbage
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "<script>")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.NotEqual(t, "<script>", seen)
}

/*
TestClientIP checks that proxy headers are honored only from trusted peers.
*/
func TestClientIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"direct_client", "192.0.2.1:1234", nil, "192.0.2.1"},
		{"direct_client_spoofs_real_ip", "192.0.2.1:1234", map[string]string{constants.HeaderXRealIP: "203.0.113.9"}, "192.0.2.1"},
		{"direct_client_spoofs_forwarded", "192.0.2.1:1234", map[string]string{constants.HeaderXForwardedFor: "203.0.113.9"}, "192.0.2.1"},
		{"trusted_proxy_real_ip", "10.1.2.3:80", map[string]string{constants.HeaderXRealIP: "203.0.113.9"}, "203.0.113.9"},
		{"trusted_proxy_forwarded", "10.1.2.3:80", map[string]string{constants.HeaderXForwardedFor: "203.0.113.9, 10.1.2.3"}, "203.0.113.9"},
		{"trusted_proxy_no_header", "10.1.2.3:80", nil, "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.ClientIP(trusted)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = middleware.RealIP(request)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			handler.ServeHTTP(httptest.NewRecorder(), request)
			assert.Equal(t, tt.want, seen)
		})
	}
}

/*
TestRealIP falls back to the socket peer and ignores headers without ClientIP.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "203.0.113.9")

	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))
}

/*
TestRateLimit verifies that a client is throttled after its burst is spent.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

/*
TestRateLimit_IgnoresSpoofedHeaders keeps a direct client in one bucket whatever it claims.
*/
func TestRateLimit_IgnoresSpoofedHeaders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.ClientIP(nil)(middleware.RateLimit(ctx, 1, 2)(okHandler))

	codes := make([]int, 0, 3)
	for i := range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXForwardedFor, "203.0.113."+strconv.Itoa(i))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

/*
TestPanicRecovery verifies that a panicking handler yields a 500 instead of a crash.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestSessions verifies that the session is available to downstream handlers.
*/
func TestSessions(t *testing.T) {
	manager, store := newManager(t)

	var sess *session.Session
	handler := middleware.Sessions(manager)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		sess = ctxutil.GetSession(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, sess)
	assert.False(t, sess.Authenticated())
	assert.NotEmpty(t, recorder.Result().Cookies())
	assert.Equal(t, 0, store.Len())
}

/*
TestRequireCSRF covers token acceptance and rejection on state-changing requests.
*/
func TestRequireCSRF(t *testing.T) {
	manager, _ := newManager(t)

	// Stands in for a rendered form page
	var sess *session.Session
	capture := middleware.Sessions(manager)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		sess = ctxutil.GetSession(request.Context())
		_, err := manager.PopFlashes(request.Context(), sess)
		require.NoError(t, err)
	}))
	first := httptest.NewRecorder()
	capture.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, sess)
	cookie := first.Result().Cookies()[0]

	chain := middleware.Sessions(manager)(middleware.RequireCSRF(manager)(okHandler))

	tests := []struct {
		name     string
		method   string
		form     url.Values
		header   string
		wantCode int
	}{
		{"get_passes", http.MethodGet, nil, "", http.StatusNoContent},
		{"post_valid_form_token", http.MethodPost, url.Values{constants.CSRFFormField: {sess.CSRFToken}}, "", http.StatusNoContent},
		{"post_valid_header_token", http.MethodPost, url.Values{}, sess.CSRFToken, http.StatusNoContent},
		{"post_missing_token", http.MethodPost, url.Values{}, "", http.StatusSeeOther},
		{"post_wrong_token", http.MethodPost, url.Values{constants.CSRFFormField: {"forged"}}, "", http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/users/alice/notes/add", strings.NewReader(tt.form.Encode()))
			request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.header != "" {
				request.Header.Set(constants.HeaderCSRFToken, tt.header)
			}
			request.AddCookie(cookie)

			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.wantCode == http.StatusSeeOther {
				assert.Equal(t, constants.RootPath, recorder.Header().Get("Location"))
			}
		})
	}
}

/*
TestRequireCSRF_CookielessPostStoresNothing rejects a forged submission from a
client that never loaded a page without writing a session record.
*/
func TestRequireCSRF_CookielessPostStoresNothing(t *testing.T) {
	manager, store := newManager(t)
	chain := middleware.Sessions(manager)(middleware.RequireCSRF(manager)(okHandler))

	for range 10 {
		form := url.Values{constants.CSRFFormField: {"forged"}}
		request := httptest.NewRequest(http.MethodPost, "/users/alice/delete", strings.NewReader(form.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		recorder := httptest.NewRecorder()
		chain.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, constants.RootPath, recorder.Header().Get("Location"))
	}

	assert.Equal(t, 0, store.Len())
}
