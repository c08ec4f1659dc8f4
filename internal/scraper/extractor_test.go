package scraper

import (
	"testing"

	"github.com/hleung/imagehound/internal/browser"
)

func TestExtractCandidates(t *testing.T) {
	testCases := []struct {
		name     string
		elements []browser.ImageElement
		want     []string
	}{
		{
			name: "valid elements pass through in DOM order",
			elements: []browser.ImageElement{
				{Src: "https://a.example/1.jpg", Width: 200, Height: 150},
				{Src: "https://a.example/2.jpg", Width: 100, Height: 100},
			},
			want: []string{"https://a.example/1.jpg", "https://a.example/2.jpg"},
		},
		{
			name: "data-src fallback when src is empty",
			elements: []browser.ImageElement{
				{DataSrc: "https://a.example/lazy.jpg", Width: 300, Height: 300},
			},
			want: []string{"https://a.example/lazy.jpg"},
		},
		{
			name: "src wins over data-src",
			elements: []browser.ImageElement{
				{Src: "https://a.example/eager.jpg", DataSrc: "https://a.example/lazy.jpg", Width: 300, Height: 300},
			},
			want: []string{"https://a.example/eager.jpg"},
		},
		{
			name: "animated placeholders dropped",
			elements: []browser.ImageElement{
				{Src: "data:image/gif;base64,R0lGOD", Width: 300, Height: 300},
				{Src: "https://a.example/real.jpg", Width: 300, Height: 300},
			},
			want: []string{"https://a.example/real.jpg"},
		},
		{
			name: "elements below minimum dimensions dropped",
			elements: []browser.ImageElement{
				{Src: "https://a.example/tiny.jpg", Width: 99, Height: 300},
				{Src: "https://a.example/short.jpg", Width: 300, Height: 99},
				{Src: "https://a.example/unset.jpg"},
			},
			want: []string{},
		},
		{
			name: "no resolvable URL dropped",
			elements: []browser.ImageElement{
				{Width: 300, Height: 300},
			},
			want: []string{},
		},
		{
			name: "duplicates preserved",
			elements: []browser.ImageElement{
				{Src: "https://a.example/same.jpg", Width: 300, Height: 300},
				{Src: "https://a.example/same.jpg", Width: 300, Height: 300},
			},
			want: []string{"https://a.example/same.jpg", "https://a.example/same.jpg"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractCandidates(tc.elements, 100, 100)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tc.want))
			}
			for i, candidate := range got {
				if candidate.URL != tc.want[i] {
					t.Errorf("candidate %d: got %q, want %q", i, candidate.URL, tc.want[i])
				}
			}
		})
	}
}

func TestExtractCandidatesInlinePayloadKept(t *testing.T) {
	// Non-gif data URIs are legitimate candidates (thumbnails are often
	// inlined as base64 jpegs).
	elements := []browser.ImageElement{
		{Src: "data:image/jpeg;base64,/9j/4AAQ", Width: 200, Height: 200},
	}
	got := ExtractCandidates(elements, 100, 100)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
}
