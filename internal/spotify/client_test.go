package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientNowPlaying(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantErr     bool
		wantPlaying bool
		wantItem    bool
	}{
		{
			name:        "playing track",
			statusCode:  http.StatusOK,
			body:        `{"is_playing": true, "item": {"id": "t1", "name": "Song A"}}`,
			wantPlaying: true,
			wantItem:    true,
		},
		{
			name:        "no content normalized to idle payload",
			statusCode:  http.StatusNoContent,
			wantPlaying: false,
			wantItem:    false,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       "boom",
			wantErr:    true,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantErr:    true,
		},
		{
			name:       "malformed body",
			statusCode: http.StatusOK,
			body:       `{"is_playing":`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			got, err := client.NowPlaying(context.Background())

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.IsPlaying != tt.wantPlaying {
				t.Errorf("IsPlaying = %v, want %v", got.IsPlaying, tt.wantPlaying)
			}
			if (got.Item != nil) != tt.wantItem {
				t.Errorf("Item presence = %v, want %v", got.Item != nil, tt.wantItem)
			}
		})
	}
}

func TestClientNowPlayingUpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	if _, err := client.NowPlaying(context.Background()); err == nil {
		t.Fatal("expected error for unreachable upstream, got nil")
	}
}
