package cachekey

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestHashDeterministic(t *testing.T) {
	keys := []string{"", "a", "b", "https://cdn.example.com/w/1.mp3", "file:///tmp/x.wav"}
	for _, key := range keys {
		if Hash(key) != Hash(key) {
			t.Errorf("Hash(%q) not stable", key)
		}
	}
}

func TestHashDistinguishesKeys(t *testing.T) {
	if Hash("a") == Hash("b") {
		t.Error(`Hash("a") should differ from Hash("b")`)
	}
	if Hash("https://x/1.mp3") == Hash("https://x/2.mp3") {
		t.Error("distinct URLs should hash differently")
	}
}

func TestHashEmptyKeyProducesValidSegment(t *testing.T) {
	got := Hash("")
	if got == "" {
		t.Fatal("empty key must still produce a non-empty hash")
	}
	if strings.ContainsAny(got, "/\\") {
		t.Errorf("hash %q is not a valid path segment", got)
	}
	if len(got) != 8 {
		t.Errorf("hash %q should be 8 hex chars", got)
	}
}

func TestExtension(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"https://x/audio", ".mp3"},
		{"https://x/a.wav?v=1", ".wav"},
		{"https://x/a.WAV?v=1", ".wav"},
		{"https://x/a.m4a#t=30", ".m4a"},
		{"https://x/a.ogg", ".ogg"},
		{"", ".mp3"},
		{"?", ".mp3"},
		{"https://x/trailing.", ".mp3"},
		{"https://x/weird.ext%20name", ".mp3"},
		{"https://x/too.longlonglong", ".mp3"},
		{"/var/audio/clip.aac", ".aac"},
	}
	for _, tc := range cases {
		if got := Extension(tc.key); got != tc.want {
			t.Errorf("Extension(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLocalPath(t *testing.T) {
	got := LocalPath("/cache", "https://x/a.wav?v=1")
	want := filepath.Join("/cache", Hash("https://x/a.wav?v=1")+".wav")
	if got != want {
		t.Errorf("LocalPath = %q, want %q", got, want)
	}
}

func TestLocalPathStableAcrossCalls(t *testing.T) {
	key := "https://cdn.example.com/whispers/42.mp3"
	if LocalPath("/cache", key) != LocalPath("/cache", key) {
		t.Error("LocalPath must be deterministic")
	}
}
