package collector

import "testing"

func TestMatchesBeautyTopic(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"#SkincareRoutine", true},
		{"GlowUp2026", true},
		{"AI", true},
		{"Champions League", false},
		{"", false},
	}
	for _, c := range cases {
		if got := matchesBeautyTopic(c.title); got != c.want {
			t.Fatalf("matchesBeautyTopic(%q) = %v, want %v", c.title, got, c.want)
		}
	}
}

func TestSearchURLEscapesTopic(t *testing.T) {
	got := searchURL("#AI skincare")
	want := "https://x.com/search?q=%23AI+skincare"
	if got != want {
		t.Fatalf("searchURL = %q, want %q", got, want)
	}
}
