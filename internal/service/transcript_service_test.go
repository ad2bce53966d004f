package service

import (
	"context"
	"fmt"
	"learnpath_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchVideoTranscript(t *testing.T) {
	ctx := context.Background()

	t.Run("segments are cleaned and empty ones dropped", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/transcript", r.URL.Path)
			require.Equal(t, "abc123", r.URL.Query().Get("videoId"))

			fmt.Fprint(w, `{
				"videoId": "abc123",
				"language": "en",
				"segments": [
					{"start": 0, "duration": 4.2, "text": "welcome to   the course"},
					{"start": 4.2, "duration": 2.0, "text": "[Music]"},
					{"start": 6.2, "duration": 3.5, "text": "let&#39;s get started"}
				]
			}`)
		}))
		defer srv.Close()

		s := NewTranscriptService(config.TranscriptConfig{BaseURL: srv.URL}, nil)
		got := s.FetchVideoTranscript(ctx, "abc123")

		assert.True(t, got.Available)
		assert.Equal(t, "en", got.Language)
		require.Len(t, got.Segments, 2)
		assert.Equal(t, "welcome to the course", got.Segments[0].Text)
		assert.Equal(t, "let's get started", got.Segments[1].Text)
		assert.Equal(t, "welcome to the course let's get started", got.FullText())
	})

	t.Run("upstream failure returns unavailable transcript", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no captions", http.StatusNotFound)
		}))
		defer srv.Close()

		s := NewTranscriptService(config.TranscriptConfig{BaseURL: srv.URL}, nil)
		got := s.FetchVideoTranscript(ctx, "abc123")

		assert.False(t, got.Available)
		assert.Equal(t, "abc123", got.VideoID)
		assert.NotEmpty(t, got.Error)
		assert.NotNil(t, got.Segments)
	})

	t.Run("unconfigured proxy returns unavailable transcript", func(t *testing.T) {
		s := NewTranscriptService(config.TranscriptConfig{}, nil)
		got := s.FetchVideoTranscript(ctx, "abc123")

		assert.False(t, got.Available)
		assert.NotEmpty(t, got.Error)
	})

	t.Run("all segments empty means unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"videoId": "abc123", "segments": [{"start": 0, "duration": 1, "text": "[Applause]"}]}`)
		}))
		defer srv.Close()

		s := NewTranscriptService(config.TranscriptConfig{BaseURL: srv.URL}, nil)
		got := s.FetchVideoTranscript(ctx, "abc123")

		assert.False(t, got.Available)
		assert.Empty(t, got.Segments)
	})
}

func TestCleanTranscriptText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"bracketed annotations removed", "[Music] hello world [Applause]", "hello world"},
		{"whitespace collapsed", "hello\n  world\t again", "hello world again"},
		{"html entities decoded", "tom &amp; jerry say &quot;hi&quot;", `tom & jerry say "hi"`},
		{"apostrophe entity", "it&#39;s fine", "it's fine"},
		{"already clean", "nothing to do", "nothing to do"},
		{"only annotation", "[Laughter]", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTranscriptText(tt.in))
		})
	}
}
