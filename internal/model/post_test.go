package model

import (
	"testing"
	"time"
)

func TestPostPreview(t *testing.T) {
	tests := []struct {
		name string
		post Post
		max  int
		want string
	}{
		{
			name: "explicit excerpt wins",
			post: Post{Excerpt: "short summary", Content: "a very long body"},
			max:  5,
			want: "short summary",
		},
		{
			name: "short content returned whole",
			post: Post{Content: "tiny"},
			max:  100,
			want: "tiny",
		},
		{
			name: "long content truncated",
			post: Post{Content: "hello world this runs long"},
			max:  11,
			want: "hello world...",
		},
		{
			name: "multibyte content truncated on rune boundary",
			post: Post{Content: "café société parisienne"},
			max:  4,
			want: "café...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.Preview(tt.max); got != tt.want {
				t.Errorf("Preview(%d) = %q, want %q", tt.max, got, tt.want)
			}
		})
	}
}

func TestPostParsedDate(t *testing.T) {
	p := Post{Date: "2025-04-19"}
	want := time.Date(2025, 4, 19, 0, 0, 0, 0, time.UTC)
	if got := p.ParsedDate(); !got.Equal(want) {
		t.Errorf("ParsedDate() = %v, want %v", got, want)
	}

	bad := Post{Date: "19/04/2025"}
	if !bad.ParsedDate().IsZero() {
		t.Errorf("ParsedDate() on malformed date = %v, want zero time", bad.ParsedDate())
	}
}
