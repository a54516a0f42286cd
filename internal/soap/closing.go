package soap

import (
	"sort"
	"strings"
)

// RelocateClosing keeps at most one copy of each whitelisted closing
// sentence present in text and moves them, in whitelist order, to the end.
// Text whose closings already form its tail, once each, is returned as is,
// which makes the operation idempotent.
//
// A closing that is a substring of a longer one only counts where it stands
// outside the longer one's occurrences, and longer closings are cut first.
func RelocateClosing(text string, closings []string) string {
	present := presentClosings(text, closings)
	if len(present) == 0 {
		return text
	}
	if closingTail(text, present) {
		return text
	}

	byLength := append([]string(nil), present...)
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })

	rest := text
	for _, c := range byLength {
		for i := strings.Index(rest, c); i >= 0; i = strings.Index(rest, c) {
			rest = cutSpan(rest, i, len(c))
		}
	}
	rest = Tidy(rest)

	parts := make([]string, 0, len(present)+1)
	if rest != "" {
		parts = append(parts, rest)
	}
	parts = append(parts, present...)
	return strings.Join(parts, "\n")
}

// closingTail reports whether each of present occurs exactly once and
// together they end text in order.
func closingTail(text string, present []string) bool {
	for _, c := range present {
		if strings.Count(maskLonger(text, c, present), c) != 1 {
			return false
		}
	}
	tail := text
	for i := len(present) - 1; i >= 0; i-- {
		tail = strings.TrimRight(tail, " \t\r\n　")
		if !strings.HasSuffix(tail, present[i]) {
			return false
		}
		tail = strings.TrimSuffix(tail, present[i])
	}
	return true
}

// presentClosings returns the distinct closings found in text, in whitelist
// order.
func presentClosings(text string, closings []string) []string {
	var present []string
	seen := make(map[string]bool, len(closings))
	for _, c := range closings {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		if strings.Contains(maskLonger(text, c, closings), c) {
			present = append(present, c)
		}
	}
	return present
}

// maskLonger blanks out every closing that contains c and is longer than it,
// so the occurrences of c left in the result stand on their own.
func maskLonger(text, c string, closings []string) string {
	for _, l := range closings {
		if len(l) > len(c) && strings.Contains(l, c) {
			text = strings.ReplaceAll(text, l, "\x00")
		}
	}
	return text
}
