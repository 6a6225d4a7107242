package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key",
		WithHTTPClient(srv.Client()),
		WithRateLimit(rate.NewLimiter(rate.Inf, 1)),
		WithMaxRetries(2),
	)
}

func TestSendChatRoundTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "quality", req.Model)
		require.Len(t, req.Messages, 1)

		json.NewEncoder(w).Encode(ChatResponse{
			ChatID:  "chat-1",
			Message: ChatMessage{Role: "assistant", Content: "hello back"},
		})
	})

	resp, err := client.SendChat(context.Background(), ChatRequest{
		Model:    "quality",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "chat-1", resp.ChatID)
	assert.Equal(t, "hello back", resp.Message.Content)
}

func TestRetriesTransientServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"error":{"code":"overloaded","message":"busy"}}`, http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(pendingImagesResponse{Images: []PendingImage{{ID: "img-1"}}})
	})

	images, err := client.PendingImages(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"code":"bad_prompt","message":"prompt required"}}`, http.StatusBadRequest)
	})

	_, err := client.GenerateImage(context.Background(), GenerationRequest{Model: "fast"})
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad_prompt", apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAuthFailureIsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	})
	_, err := client.ListAssets(context.Background())
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestInsufficientCreditsIsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})
	_, err := client.GenerateVideo(context.Background(), GenerationRequest{Prompt: "waves"})
	assert.ErrorIs(t, err, ErrInsufficientCredits)
}

func TestMissingBaseURL(t *testing.T) {
	client := NewClient("", "")
	_, err := client.ListCollections(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestContextCancellationStopsRetries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.PendingVideos(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(Collection{ID: "col-1", Name: body["name"]})
	})
	col, err := client.CreateCollection(context.Background(), "Moodboards")
	require.NoError(t, err)
	assert.Equal(t, "col-1", col.ID)
	assert.Equal(t, "Moodboards", col.Name)
}
