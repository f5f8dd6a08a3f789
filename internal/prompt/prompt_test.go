package prompt

import (
	"strings"
	"testing"
)

func TestBuildIncludesKeySections(t *testing.T) {
	commits := []string{
		"- **2025-02-03 10:00:00 +0000** | `bbb2222`: fix: handle empty input",
		"- **2025-02-02 09:00:00 +0000** | `aaa1111`: feat: add parser",
	}

	out := Build(commits)

	for _, snippet := range []string{
		"oldest first",
		"If a section does not apply, omit it.",
		"### Commits (newest first)\n" + commits[0] + "\n" + commits[1] + "\n",
		"- **New Features**",
		"- **Improvements**",
		"- **Bug Fixes**",
		"- **Deprecations**",
		"- **Performance Enhancements**",
		"inline code using backticks",
	} {
		if !strings.Contains(out, snippet) {
			t.Fatalf("prompt missing expected content: %q", snippet)
		}
	}
}

func TestBuildKeepsCommitOrder(t *testing.T) {
	out := Build([]string{"zz-three", "zz-two", "zz-one"})

	i3 := strings.Index(out, "zz-three")
	i2 := strings.Index(out, "zz-two")
	i1 := strings.Index(out, "zz-one")
	if !(i3 < i2 && i2 < i1) {
		t.Fatalf("commit lines reordered: third=%d second=%d first=%d", i3, i2, i1)
	}
}

func TestBuildEmbedsCondensedGroupsVerbatim(t *testing.T) {
	group := "1. - `aaa1111`: a, - `bbb2222`: b | c"
	if out := Build([]string{group}); !strings.Contains(out, group) {
		t.Fatalf("condensed group not embedded verbatim")
	}
}
