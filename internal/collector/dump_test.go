package collector

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDump(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

func TestLoadDumpMissingFileIsEmptyNotError(t *testing.T) {
	posts, err := loadDump(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing dump must not error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(posts))
	}
}

func TestLoadDumpCapsPosts(t *testing.T) {
	dir := t.TempDir()
	path := writeDump(t, dir, "twitter_apify_posts.json", `[
		{"title":"1"},{"title":"2"},{"title":"3"},
		{"title":"4"},{"title":"5"},{"title":"6"},{"title":"7"}
	]`)

	posts, err := loadDump(path)
	if err != nil {
		t.Fatalf("loadDump error: %v", err)
	}
	if len(posts) != dumpMaxPosts {
		t.Fatalf("expected cap of %d posts, got %d", dumpMaxPosts, len(posts))
	}
	if posts[0]["title"] != "1" {
		t.Fatalf("cap must keep leading entries, got %v", posts[0]["title"])
	}
}

func TestLoadDumpSkipsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	path := writeDump(t, dir, "d.json", `[{"title":"good","score":10}, "not an object", 42, {"title":"also good"}]`)

	posts, err := loadDump(path)
	if err != nil {
		t.Fatalf("loadDump error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 valid posts, got %d", len(posts))
	}
	if posts[0]["title"] != "good" || posts[1]["title"] != "also good" {
		t.Fatalf("wrong survivors: %v", posts)
	}
}

func TestLoadDumpRejectsNonArrayPayload(t *testing.T) {
	dir := t.TempDir()
	path := writeDump(t, dir, "d.json", `{"title":"object not array"}`)

	if _, err := loadDump(path); err == nil {
		t.Fatalf("expected error for non-array dump")
	}
}
