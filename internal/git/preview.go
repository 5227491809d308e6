package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// RenderStagedDiff renders a unified-diff preview of a staged diff set,
// file by file in path order. It is presentation only: the AI layer always
// receives the whole before/after contents, never this rendering.
func RenderStagedDiff(set StagedDiffSet) (string, error) {
	paths := make([]string, 0, len(set))
	for path := range set {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		entry := set[path]
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)

		if entry.Before == "" && entry.After == "" {
			b.WriteString("(binary or empty on both sides)\n")
			continue
		}

		ud := difflib.UnifiedDiff{
			A:        difflib.SplitLines(entry.Before),
			B:        difflib.SplitLines(entry.After),
			FromFile: "a/" + path,
			ToFile:   "b/" + path,
			Context:  3,
		}
		text, err := difflib.GetUnifiedDiffString(ud)
		if err != nil {
			return "", err
		}
		if text == "" {
			b.WriteString("(no textual changes)\n")
			continue
		}
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
