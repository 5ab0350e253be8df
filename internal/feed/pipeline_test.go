package feed

import "testing"

func TestFilterIsStrictlyGreater(t *testing.T) {
	posts := []Post{
		{Title: "above", Score: 101},
		{Title: "exact", Score: 100},
		{Title: "below", Score: 99},
	}

	out := Filter(posts, 100)
	if len(out) != 1 {
		t.Fatalf("expected only score>100 to survive, got %d posts", len(out))
	}
	if out[0].Title != "above" {
		t.Fatalf("wrong survivor: %+v", out[0])
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	posts := []Post{
		{Title: "a", Score: 500},
		{Title: "b", Score: 50},
		{Title: "c", Score: 300},
		{Title: "d", Score: 200},
	}

	out := Filter(posts, 100)
	want := []string{"a", "c", "d"}
	if len(out) != len(want) {
		t.Fatalf("expected %d survivors, got %d", len(want), len(out))
	}
	for i, title := range want {
		if out[i].Title != title {
			t.Fatalf("order changed: out[%d]=%q, want %q", i, out[i].Title, title)
		}
	}
}

func TestRankSortsByEngagementDescending(t *testing.T) {
	// Spec scenario: A(150+10=160) and C(200+1=201) survive the filter,
	// and C must rank first.
	posts := []Post{
		{Title: "A", Score: 150, Comments: 10, Engagement: 160},
		{Title: "C", Score: 200, Comments: 1, Engagement: 201},
	}

	out := Rank(posts)
	if out[0].Title != "C" || out[1].Title != "A" {
		t.Fatalf("expected order [C A], got [%s %s]", out[0].Title, out[1].Title)
	}

	for i := 1; i < len(out); i++ {
		if out[i-1].Engagement < out[i].Engagement {
			t.Fatalf("engagement not non-increasing at %d: %d < %d",
				i, out[i-1].Engagement, out[i].Engagement)
		}
	}
}

func TestRankIsStableOnTies(t *testing.T) {
	// Equal engagement keeps pre-sort order, which reflects the fixed
	// adapter call order.
	posts := []Post{
		{Title: "first", Source: "Reddit", Engagement: 300},
		{Title: "second", Source: "Twitter", Engagement: 300},
		{Title: "third", Source: "Instagram", Engagement: 300},
		{Title: "top", Source: "LinkedIn", Engagement: 900},
	}

	out := Rank(posts)
	want := []string{"top", "first", "second", "third"}
	for i, title := range want {
		if out[i].Title != title {
			t.Fatalf("stability violated: out[%d]=%q, want %q", i, out[i].Title, title)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	posts := []Post{
		{Title: "low", Engagement: 1},
		{Title: "high", Engagement: 2},
	}

	_ = Rank(posts)
	if posts[0].Title != "low" {
		t.Fatalf("input slice was reordered: %+v", posts)
	}
}
