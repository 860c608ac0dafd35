package selfserve

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorTextResponse(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/hello/Alice", r.URL.Path)
		writeText(t, w, http.StatusOK, "Yo, Alice!")
	}, nil)

	var greeting string
	resp, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/api/v1/hello/Alice"}, &greeting)
	require.NoError(t, err)
	assert.Equal(t, "Yo, Alice!", greeting)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, KindText, resp.Kind)
}

func TestExecutorTextIntoAny(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeText(t, w, http.StatusOK, "Yo, Bob!")
	}, nil)

	var out any
	_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/api/v1/hello/Bob"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Yo, Bob!", out)
}

func TestExecutorJSONResponse(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"id":"g-1","first_name":"Ada","floors":3}`)
	}, nil)

	var out struct {
		ID        string `json:"id"`
		FirstName string `json:"first_name"`
		Floors    int    `json:"floors"`
	}
	resp, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/api/v1/guests/g-1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, KindJSON, resp.Kind)
	assert.Equal(t, "g-1", out.ID)
	assert.Equal(t, "Ada", out.FirstName)
	assert.Equal(t, 3, out.Floors)
}

func TestExecutorMissingContentTypeIsText(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte(`{"not":"parsed"}`))
	}, nil)

	var out any
	resp, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/raw"}, &out)
	require.NoError(t, err)
	assert.Equal(t, KindText, resp.Kind)
	assert.Equal(t, `{"not":"parsed"}`, out)
}

func TestExecutorHeaders(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "hotel-7", r.Header.Get("X-Hotel-ID"))
		w.WriteHeader(http.StatusNoContent)
	}, StaticToken(testToken))

	_, err := NewExecutor(settings).Do(context.Background(), Request{
		URL:     "/api/v1/hotels/7",
		Headers: map[string]string{"X-Hotel-ID": "hotel-7"},
	}, nil)
	require.NoError(t, err)
}

func TestExecutorNoTokenOmitsAuthorization(t *testing.T) {
	var sawAuth atomic.Bool
	handler := func(w http.ResponseWriter, r *http.Request) {
		if len(r.Header.Values("Authorization")) > 0 {
			sawAuth.Store(true)
		}
		w.WriteHeader(http.StatusNoContent)
	}

	for name, auth := range map[string]AuthProvider{
		"nil provider":  nil,
		"empty token":   StaticToken(""),
		"anonymous":     Anonymous,
		"func no token": TokenFunc(func(context.Context) (string, error) { return "", nil }),
	} {
		t.Run(name, func(t *testing.T) {
			_, settings := newTestServer(t, handler, auth)
			_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/health"}, nil)
			require.NoError(t, err)
			assert.False(t, sawAuth.Load(), "Authorization header must be absent")
		})
	}
}

func TestExecutorCallerHeadersWin(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
		assert.Equal(t, "Token override", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}, StaticToken(testToken))

	_, err := NewExecutor(settings).Do(context.Background(), Request{
		URL: "/upload",
		Headers: map[string]string{
			"Content-Type":  "text/csv",
			"Authorization": "Token override",
		},
	}, nil)
	require.NoError(t, err)
}

func TestExecutorTokenReadPerRequest(t *testing.T) {
	var calls atomic.Int32
	auth := TokenFunc(func(context.Context) (string, error) {
		n := calls.Add(1)
		if n == 1 {
			return "first", nil
		}
		return "second", nil
	})

	var seen []string
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}, auth)

	exec := NewExecutor(settings)
	for i := 0; i < 2; i++ {
		_, err := exec.Do(context.Background(), Request{URL: "/health"}, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestExecutorJSONBodyAndQuery(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "hotel_id=h1&tags=a&tags=b", r.URL.RawQuery)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"raw_text":"extra towels","hotel_id":"h1"}`, string(body))
		writeJSON(t, w, http.StatusOK, `{"id":"r-1"}`)
	}, nil)

	var out map[string]any
	_, err := NewExecutor(settings).Do(context.Background(), Request{
		URL:    "/api/v1/request/generate",
		Method: MethodPost,
		Params: Params{"hotel_id": "h1", "tags": []string{"a", "b"}, "skip": nil},
		Data:   map[string]string{"raw_text": "extra towels", "hotel_id": "h1"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "r-1", out["id"])
}

func TestExecutorTypedNilDataSendsNoBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	var nilMap map[string]any
	var nilSlice []string

	for name, data := range map[string]any{
		"nil pointer": (*payload)(nil),
		"nil map":     nilMap,
		"nil slice":   nilSlice,
	} {
		t.Run(name, func(t *testing.T) {
			_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Empty(t, body)
				w.WriteHeader(http.StatusNoContent)
			}, nil)

			_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/x", Method: MethodPost, Data: data}, nil)
			require.NoError(t, err)
		})
	}
}

func TestExecutorEmptySliceDataIsSent(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(body))
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/x", Method: MethodPost, Data: []string{}}, nil)
	require.NoError(t, err)
}

func TestExecutorEmptyBodyLeavesOutUntouched(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	out := map[string]any{"keep": true}
	resp, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/x", Method: MethodDelete}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Equal(t, map[string]any{"keep": true}, out)
}

func TestExecutorHTTPErrorWithMessage(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, `{"message":"boom","code":"E_BOOM"}`)
	}, nil)

	resp, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/api/v1/request/r-1"}, nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
	assert.Equal(t, map[string]any{"message": "boom", "code": "E_BOOM"}, apiErr.Data)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, apiErr.DecodeData(&body))
	assert.Equal(t, "E_BOOM", body.Code)
}

func TestExecutorHTTPErrorWithoutMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		json     bool
		wantData any
	}{
		{name: "plain text body", status: http.StatusBadGateway, body: "bad gateway", wantData: map[string]any{}},
		{name: "empty body", status: http.StatusNotFound, body: "", wantData: map[string]any{}},
		{name: "json without message", status: http.StatusBadRequest, body: `{"error":"nope"}`, json: true, wantData: map[string]any{"error": "nope"}},
		{name: "null message", status: http.StatusConflict, body: `{"message":null}`, json: true, wantData: map[string]any{"message": nil}},
		{name: "malformed json", status: http.StatusInternalServerError, body: `{"message":`, json: true, wantData: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.json {
					writeJSON(t, w, tt.status, tt.body)
					return
				}
				writeText(t, w, tt.status, tt.body)
			}, nil)

			_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/fail"}, nil)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "expected *APIError, got %T", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "Request failed", apiErr.Message)
			assert.Equal(t, tt.wantData, apiErr.Data)
		})
	}
}

func TestExecutorTransportFailure(t *testing.T) {
	server, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	server.Close()

	_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/health"}, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.True(t, apiErr.IsTransport())
	assert.NotEmpty(t, apiErr.Message)
	assert.Equal(t, apiErr.Cause, apiErr.Data)
	assert.True(t, IsRetryable(err))
}

func TestExecutorTokenFailure(t *testing.T) {
	tokenErr := errors.New("session expired")
	var hits atomic.Int32
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, TokenFunc(func(context.Context) (string, error) { return "", tokenErr }))

	_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/health"}, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.ErrorIs(t, err, tokenErr)
	assert.Zero(t, hits.Load(), "request must not be sent")
}

func TestExecutorDecodeFailure(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"id":`)
	}, nil)

	var out map[string]any
	_, err := NewExecutor(settings).Do(context.Background(), Request{URL: "/broken"}, &out)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
}

func TestExecutorNotConfigured(t *testing.T) {
	_, err := NewExecutor(NewSettings()).Do(context.Background(), Request{URL: "/health"}, nil)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "not initialized")
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestExecutorNilSettings(t *testing.T) {
	_, err := NewExecutor(nil).Do(context.Background(), Request{URL: "/health"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExecutorSettingsSetLater(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeText(t, w, http.StatusOK, "ok")
	}, nil)

	settings := NewSettings()
	exec := NewExecutor(settings)

	_, err := exec.Do(context.Background(), Request{URL: "/health"}, nil)
	require.ErrorIs(t, err, ErrNotConfigured)

	settings.Set(Config{BaseURL: server.URL})
	var out string
	_, err = exec.Do(context.Background(), Request{URL: "/health"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestExecutorCancellation(t *testing.T) {
	release := make(chan struct{})
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, nil)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewExecutor(settings).Do(ctx, Request{URL: "/slow"}, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsRetryable(err))
}

func TestExecutorMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(req *http.Request, next RoundTripper) (*http.Response, error) {
			order = append(order, name+":before")
			resp, err := next.RoundTrip(req)
			order = append(order, name+":after")
			return resp, err
		}
	}

	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	_, err := NewExecutor(settings, WithMiddleware(mark("outer"), mark("inner"))).
		Do(context.Background(), Request{URL: "/health"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestExecutorMiddlewareAPIErrorPassesThrough(t *testing.T) {
	want := &APIError{Message: "short-circuited", Status: http.StatusTeapot}
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}, nil)

	stop := func(req *http.Request, next RoundTripper) (*http.Response, error) {
		return nil, want
	}
	_, err := NewExecutor(settings, WithMiddleware(stop)).Do(context.Background(), Request{URL: "/health"}, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Same(t, want, apiErr)
}

func TestExecutorInvalidOptions(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	exec := NewExecutor(settings, WithMiddleware(nil), WithTimeout(-time.Second))
	assert.False(t, exec.IsValid())

	_, err := exec.Do(context.Background(), Request{URL: "/health"}, nil)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.Contains(t, err.Error(), "middleware[0] cannot be nil")
	assert.Contains(t, err.Error(), "timeout must be non-negative")
}

func TestExecutorDebugLogging(t *testing.T) {
	_, settings := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/fail") {
			writeJSON(t, w, http.StatusBadRequest, `{"message":"bad input"}`)
			return
		}
		writeText(t, w, http.StatusOK, "ok")
	}, nil)

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})

	exec := NewExecutor(settings,
		WithDebug(),
		WithLogger(logger),
		WithRequestIDGenerator(func() string { return "req-42" }),
	)

	_, err := exec.Do(context.Background(), Request{URL: "/ok"}, nil)
	require.NoError(t, err)
	_, err = exec.Do(context.Background(), Request{URL: "/fail"}, nil)
	require.Error(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "starting request")
	assert.Contains(t, logs, "request completed")
	assert.Contains(t, logs, "request failed")
	assert.Contains(t, logs, "req-42")
	assert.Contains(t, logs, "bad input")
}
