package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend_NoWebhookConfigured(t *testing.T) {
	s := NewSender("", "Investfolio")
	if s.Enabled() {
		t.Fatal("sender without URL must be disabled")
	}
	// Only logs; must not panic or block.
	s.Send("order 1 confirmed")
}

func TestSend_PostsPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(srv.URL, "Investfolio")
	if !s.Enabled() {
		t.Fatal("sender with URL must be enabled")
	}
	s.Send("wallet 7 settled 2 lines")

	if got["username"] != "Investfolio" {
		t.Fatalf("unexpected username %q", got["username"])
	}
	if got["text"] == "" {
		t.Fatal("expected text payload for non-discord webhook")
	}
}

func TestFormatPayload_Discord(t *testing.T) {
	s := NewSender("https://discord.com/api/webhooks/123/abc", "Investfolio")
	payload := s.formatPayload("order 9 confirmed")
	if payload["content"] == "" {
		t.Fatal("discord payload must use content field")
	}
	if _, ok := payload["text"]; ok {
		t.Fatal("discord payload must not carry a text field")
	}
}

func TestDefaultServiceName(t *testing.T) {
	s := NewSender("", "")
	if s.serviceName != "Investfolio" {
		t.Fatalf("expected default service name, got %q", s.serviceName)
	}
}
