package textsearch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	taierrors "thoreinstein.com/tai/pkg/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}

func TestSearcher_SearchFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "fix this\nTODO: write tests\ndone\nTODO again\n")

	got, err := New().Search("TODO", path)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []Match{
		{Path: path, Line: 2, Text: "TODO: write tests"},
		{Path: path, Line: 4, Text: "TODO again"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearcher_SearchDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.go"), "package b\n// TODO b\n")
	writeFile(t, filepath.Join(dir, "a.go"), "// TODO a\n")
	writeFile(t, filepath.Join(dir, "bin.dat"), "TODO\xff\xfe")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "nested", "c.go"), "// TODO nested\n")

	got, err := New().Search(`TODO \w`, dir)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []Match{
		{Path: filepath.Join(dir, "a.go"), Line: 1, Text: "// TODO a"},
		{Path: filepath.Join(dir, "b.go"), Line: 2, Text: "// TODO b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearcher_SearchDirectoryFollowsFileSymlinks(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "real.txt"), "TODO linked\n")
	if err := os.Mkdir(filepath.Join(outside, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(outside, "sub", "x.txt"), "TODO in linked dir\n")

	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(outside, "real.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "sub"), filepath.Join(dir, "linkdir")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "missing.txt"), filepath.Join(dir, "dangling.txt")); err != nil {
		t.Fatal(err)
	}

	got, err := New().Search("TODO", dir)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []Match{
		{Path: filepath.Join(dir, "link.txt"), Line: 1, Text: "TODO linked"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestSearcher_NoMatches(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "nothing here\n")

	got, err := New().Search("TODO", path)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Search() = %v, want no matches", got)
	}
}

func TestSearcher_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := New().Search("TODO", filepath.Join(dir, "missing"))
	if !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("Search(missing) error = %v, want ErrTargetNotFound", err)
	}

	_, err = New().Search("(", dir)
	if !taierrors.IsInvalidArgument(err) {
		t.Errorf("Search(bad pattern) error = %v, want invalid argument", err)
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"single newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Lines(tt.content), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Lines(%q) mismatch (-want +got):\n%s", tt.content, diff)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		content             string
		lines, words, chars int
	}{
		{"empty", "", 0, 0, 0},
		{"one line", "the quick fox\n", 1, 3, 14},
		{"no trailing newline", "a b\nc", 2, 3, 5},
		{"unicode", "héllo wörld", 1, 2, 11},
		{"whitespace runs", "  a \t b\n\n c  ", 3, 3, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CountLines(tt.content); got != tt.lines {
				t.Errorf("CountLines() = %d, want %d", got, tt.lines)
			}
			if got := CountWords(tt.content); got != tt.words {
				t.Errorf("CountWords() = %d, want %d", got, tt.words)
			}
			if got := CountChars(tt.content); got != tt.chars {
				t.Errorf("CountChars() = %d, want %d", got, tt.chars)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	content := "1\n\n2\n   \n3\n4\n5\n6\n7\n"
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, Summarize(content, 5)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"only"}, Summarize("only", 5)); diff != "" {
		t.Errorf("Summarize(short) mismatch (-want +got):\n%s", diff)
	}
	if got := Summarize("\n \n", 5); len(got) != 0 {
		t.Errorf("Summarize(empty) = %v, want none", got)
	}
}
