package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Send_Success(t *testing.T) {
	var (
		gotPath        string
		gotAuth        string
		gotContentType string
		gotBody        map[string]any
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"1"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL + "/", Token: "secret", ChannelID: "42"})

	if err := client.Send(context.Background(), "hello\nworld"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/channels/42/messages" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotAuth != "Bot secret" {
		t.Errorf("expected bot credential, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}
	if gotBody["content"] != "hello\nworld" {
		t.Errorf("unexpected content %v", gotBody["content"])
	}
	if len(gotBody) != 1 {
		t.Errorf("expected only content field, got %v", gotBody)
	}
}

func TestClient_Send_AnyTwoXX(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Token: "t", ChannelID: "c"})
	if err := client.Send(context.Background(), "x"); err != nil {
		t.Fatalf("204 should be success: %v", err)
	}
}

func TestClient_Send_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message": "401: Unauthorized", "code": 0}`},
		{"forbidden", http.StatusForbidden, `{"message": "Missing Access", "code": 50001}`},
		{"server error", http.StatusBadGateway, "bad gateway"},
		{"redirect", http.StatusNotModified, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(Config{BaseURL: server.URL, Token: "t", ChannelID: "c"})
			err := client.Send(context.Background(), "x")

			if !errors.Is(err, ErrDelivery) {
				t.Fatalf("expected ErrDelivery, got %v", err)
			}

			var delivery *DeliveryError
			if !errors.As(err, &delivery) {
				t.Fatalf("expected *DeliveryError, got %T", err)
			}
			if delivery.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, delivery.StatusCode)
			}
			if delivery.Body != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, delivery.Body)
			}
		})
	}
}

func TestClient_Send_TruncatesLongBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(strings.Repeat("x", 2000)))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Token: "t", ChannelID: "c"})
	err := client.Send(context.Background(), "x")

	var delivery *DeliveryError
	if !errors.As(err, &delivery) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
	if len(delivery.Body) != maxErrorBody+3 {
		t.Errorf("expected truncated body, got %d bytes", len(delivery.Body))
	}
}

func TestClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Token: "t", ChannelID: "c", Timeout: 50 * time.Millisecond})
	err := client.Send(context.Background(), "x")

	if !errors.Is(err, ErrRequest) {
		t.Fatalf("expected ErrRequest, got %v", err)
	}
	if errors.Is(err, ErrDelivery) {
		t.Error("transport error should not be a delivery error")
	}
}

func TestClient_MessagesURL_Default(t *testing.T) {
	client := New(Config{ChannelID: "123"})
	if got := client.MessagesURL(); got != "https://discord.com/api/v10/channels/123/messages" {
		t.Errorf("unexpected url %s", got)
	}
}
