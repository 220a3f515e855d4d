// ABOUTME: Display-width measurement and truncation for plain terminal text
// ABOUTME: Grapheme-aware via uniseg; per-cluster width from go-runewidth

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Of returns the display width of s in terminal cells.
func Of(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	forEachCluster(s, func(cluster string) bool {
		w += clusterWidth(cluster)
		return true
	})
	return w
}

// Truncate cuts s to at most maxWidth cells, ending with tail when cut.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	if Of(s) <= maxWidth {
		return s
	}
	budget := maxWidth - Of(tail)
	if budget <= 0 {
		return Truncate(tail, maxWidth, "")
	}

	out := make([]byte, 0, len(s))
	used := 0
	forEachCluster(s, func(cluster string) bool {
		cw := clusterWidth(cluster)
		if used+cw > budget {
			return false
		}
		out = append(out, cluster...)
		used += cw
		return true
	})
	return string(out) + tail
}

// TruncateLeft keeps the end of s within maxWidth cells, starting with head
// when cut. Suited to file paths where the base name matters most.
func TruncateLeft(s string, maxWidth int, head string) string {
	if maxWidth <= 0 {
		return ""
	}
	if Of(s) <= maxWidth {
		return s
	}
	budget := maxWidth - Of(head)
	if budget <= 0 {
		return Truncate(head, maxWidth, "")
	}

	var clusters []string
	forEachCluster(s, func(cluster string) bool {
		clusters = append(clusters, cluster)
		return true
	})

	used := 0
	start := len(clusters)
	for i := len(clusters) - 1; i >= 0; i-- {
		cw := clusterWidth(clusters[i])
		if used+cw > budget {
			break
		}
		used += cw
		start = i
	}

	out := head
	for _, c := range clusters[start:] {
		out += c
	}
	return out
}

// isPlainASCII returns true if s contains only printable ASCII.
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

func forEachCluster(s string, fn func(cluster string) bool) {
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if !fn(cluster) {
			return
		}
	}
}

// clusterWidth returns the display width of a single grapheme cluster.
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
