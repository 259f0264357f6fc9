package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIComplete(t *testing.T) {
	var got map[string]any
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"hotel\":{}}"},"finish_reason":"stop"}]}`))
	})

	client, err := NewOpenAI(WithToken("test-key"), WithBaseURL(srv.URL), WithModel("gpt-test"), WithJSONMode(true))
	require.NoError(t, err)

	out, err := client.Complete(context.Background(), Request{System: "sys", User: "plan it"})
	require.NoError(t, err)
	assert.Equal(t, `{"hotel":{}}`, out)

	assert.Equal(t, "gpt-test", got["model"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "plan it", msgs[1].(map[string]any)["content"])
	assert.Equal(t, "json_object", got["response_format"].(map[string]any)["type"])
}

func TestOpenAICompleteServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
	})

	client, err := NewOpenAI(WithToken("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{User: "x"})
	require.Error(t, err)
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","choices":[]}`))
	})

	client, err := NewOpenAI(WithToken("k"), WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{User: "x"})
	require.Error(t, err)
}

func TestNewOpenAIRequiresToken(t *testing.T) {
	_, err := NewOpenAI()
	require.Error(t, err)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Complete(context.Background(), Request{})
	assert.True(t, errors.Is(err, ErrDisabled))
}
