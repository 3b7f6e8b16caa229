package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPDispatcher_Send(t *testing.T) {
	t.Run("posts the template and params", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/messages", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(map[string]string{"message_id": "msg-1"})
		}))
		t.Cleanup(srv.Close)

		result := notify.NewHTTPDispatcher(srv.URL, "secret", 0).
			Send(t.Context(), ports.NotificationShipped, "+919800000001", map[string]string{"awb": "AWB1"})

		require.True(t, result.Success, result.Error)
		assert.Equal(t, "msg-1", result.MessageID)
		assert.Equal(t, "+919800000001", got["to"])
		assert.Equal(t, "shipped", got["template"])
		assert.Equal(t, map[string]any{"awb": "AWB1"}, got["params"])
	})

	t.Run("provider error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid number"})
		}))
		t.Cleanup(srv.Close)

		result := notify.NewHTTPDispatcher(srv.URL, "", 0).
			Send(t.Context(), ports.NotificationPlaced, "123", nil)

		assert.False(t, result.Success)
		assert.Equal(t, "messaging provider returned status 400: invalid number", result.Error)
	})

	t.Run("not configured", func(t *testing.T) {
		result := notify.NewHTTPDispatcher(" ", "", 0).Send(t.Context(), ports.NotificationPlaced, "123", nil)
		assert.False(t, result.Success)
		assert.Equal(t, "messaging provider is not configured", result.Error)
	})

	t.Run("no recipient", func(t *testing.T) {
		result := notify.NewHTTPDispatcher("http://messaging", "", 0).Send(t.Context(), ports.NotificationPlaced, "", nil)
		assert.False(t, result.Success)
	})

	t.Run("unreachable provider", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		result := notify.NewHTTPDispatcher(srv.URL, "", 0).Send(t.Context(), ports.NotificationDelivered, "123", nil)
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "send message")
	})
}
