package lesson

import "testing"

func TestParseGenerated(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "both markers",
			text:        "TITLE: The Water Cycle\nCONTENT: Rain falls.\n\nThe sun warms the sea.",
			wantTitle:   "The Water Cycle",
			wantContent: "Rain falls.\n\nThe sun warms the sea.",
		},
		{
			name:        "lowercase markers",
			text:        "title:  Plants \ncontent:\n  Leaves make food.",
			wantTitle:   "Plants",
			wantContent: "Leaves make food.",
		},
		{
			name:        "no markers",
			text:        "Just some text.",
			wantTitle:   DefaultTitle,
			wantContent: "Just some text.",
		},
		{
			name:        "title only",
			text:        "TITLE: Shapes\nCircles are round.",
			wantTitle:   "Shapes",
			wantContent: "TITLE: Shapes\nCircles are round.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, content := ParseGenerated(tt.text)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestDedupeSources(t *testing.T) {
	in := []Source{
		{URI: "https://a.example", Title: "A"},
		{URI: "https://b.example"},
		{URI: "https://a.example", Title: "A again"},
		{URI: "", Title: "no uri"},
	}

	got := DedupeSources(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d: %v", len(got), got)
	}
	if got[0].Title != "A" {
		t.Errorf("expected first occurrence to win, got %q", got[0].Title)
	}
	if got[1].Title != "https://b.example" {
		t.Errorf("expected URI as fallback title, got %q", got[1].Title)
	}
}
