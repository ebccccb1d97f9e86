// Package grapheme provides grapheme cluster helpers used by the cell formatter.
package grapheme

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of text in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Take returns at most n leading grapheme clusters of text.
// It stops segmenting once n clusters have been produced, so the cost is
// bounded by n rather than by the length of text.
func Take(text string, n int) []string {
	if text == "" || n <= 0 {
		return nil
	}
	out := make([]string, 0, min(n, len(text)))
	g := uniseg.NewGraphemes(text)
	for len(out) < n && g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// Width returns the number of terminal columns a cluster occupies.
func Width(cluster string) int {
	return uniseg.StringWidth(cluster)
}

// IsSingle reports whether s consists of exactly one grapheme cluster.
func IsSingle(s string) bool {
	return Count(s) == 1
}
