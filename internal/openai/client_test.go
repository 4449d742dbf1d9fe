package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, content string, inspect func(body string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if inspect != nil {
			inspect(string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
}

func TestComplete_Success(t *testing.T) {
	var sent map[string]any
	server := chatServer(t, "제 평가는 4.5점입니다.", func(body string) {
		require.NoError(t, json.Unmarshal([]byte(body), &sent))
	})
	defer server.Close()

	c := NewClient("test-key", "gpt-4", WithBaseURL(server.URL+"/v1/"), WithMaxTokens(512))
	out, err := c.Complete(context.Background(), `문장: "가을 하늘은 맑고 푸르다."`)
	require.NoError(t, err)

	assert.Equal(t, "제 평가는 4.5점입니다.", out)
	assert.Equal(t, "gpt-4", sent["model"])
	assert.EqualValues(t, 512, sent["max_tokens"])
	msgs, ok := sent["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
	assert.Contains(t, msgs[0].(map[string]any)["content"], "가을 하늘은 맑고 푸르다.")
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "Incorrect API key provided",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", "gpt-4", WithBaseURL(server.URL+"/v1"))
	_, err := c.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion")
}

func TestRecognize_SendsDataURI(t *testing.T) {
	var body string
	server := chatServer(t, "  가을 하늘은 맑고 푸르다.\n", func(b string) { body = b })
	defer server.Close()

	c := NewClient("test-key", "gpt-4", WithBaseURL(server.URL+"/v1"))
	text, err := c.Recognizer("gpt-4o").Recognize(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "가을 하늘은 맑고 푸르다.", text)
	assert.True(t, strings.Contains(body, "data:image/png;base64,iVBORw=="), "request should carry the image as a data URI")
	assert.Contains(t, body, `"model":"gpt-4o"`)
}

func TestRecognize_EmptyImage(t *testing.T) {
	c := NewClient("test-key", "gpt-4")
	_, err := c.Recognizer("gpt-4o").Recognize(context.Background(), nil, "image/png")
	assert.Error(t, err)
}
