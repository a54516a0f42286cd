package soap

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// OpeningContext is what happened at the previous visit.
type OpeningContext string

const (
	OpeningNewDrug     OpeningContext = "new_drug"
	OpeningChangedDrug OpeningContext = "changed_drug"
	OpeningContinued   OpeningContext = "none"
)

// OpeningStatus is how the patient reports feeling since then.
type OpeningStatus string

const (
	StatusStable    OpeningStatus = "stable"
	StatusBetter    OpeningStatus = "better"
	StatusUnchanged OpeningStatus = "unchanged"
	StatusNotBetter OpeningStatus = "not_better"
)

// OpeningContexts and OpeningStatuses list the picker choices in display order.
var (
	OpeningContexts = []OpeningContext{OpeningNewDrug, OpeningChangedDrug, OpeningContinued}
	OpeningStatuses = []OpeningStatus{StatusStable, StatusBetter, StatusUnchanged, StatusNotBetter}
)

var contextPhrases = map[OpeningContext]string{
	OpeningNewDrug:     "前回、新薬追加。",
	OpeningChangedDrug: "前回、薬変更。",
	OpeningContinued:   "前回、Do処方。",
}

var statusPhrases = map[OpeningStatus]string{
	StatusStable:    "体調は落ち着いている。",
	StatusBetter:    "体調は改善している。",
	StatusUnchanged: "体調に変わりはない。",
	StatusNotBetter: "体調は良くなっていない。",
}

// ContextLabel returns the button caption for c.
func ContextLabel(c OpeningContext) string {
	return strings.TrimSuffix(contextPhrases[c], "。")
}

// StatusLabel returns the button caption for s.
func StatusLabel(s OpeningStatus) string {
	return strings.TrimSuffix(statusPhrases[s], "。")
}

// OpeningSentence returns the opening line for the pair, or "" when either
// value is unknown.
func OpeningSentence(c OpeningContext, s OpeningStatus) string {
	cp, ok := contextPhrases[c]
	if !ok {
		return ""
	}
	sp, ok := statusPhrases[s]
	if !ok {
		return ""
	}
	return cp + sp
}

// ApplyOpening puts the opening line for (c, s) at the top of S. A previous
// opening line is replaced, never stacked. Unknown pairs clear nothing and
// change nothing.
func ApplyOpening(fields domain.SoapFields, c OpeningContext, s OpeningStatus) domain.SoapFields {
	line := OpeningSentence(c, s)
	if line == "" {
		return fields
	}
	body := stripOpening(fields.S)
	if body == "" {
		fields.S = line
		return fields
	}
	fields.S = line + "\n" + body
	return fields
}

// ClearOpening removes an opening line previously put on S.
func ClearOpening(fields domain.SoapFields) domain.SoapFields {
	fields.S = stripOpening(fields.S)
	return fields
}

func stripOpening(text string) string {
	first, rest, _ := strings.Cut(text, "\n")
	if isOpening(strings.TrimSpace(first)) {
		return rest
	}
	return text
}

func isOpening(line string) bool {
	for _, c := range OpeningContexts {
		for _, s := range OpeningStatuses {
			if line == OpeningSentence(c, s) {
				return true
			}
		}
	}
	return false
}

// ParseOpening parses "context:status".
func ParseOpening(v string) (OpeningContext, OpeningStatus, bool) {
	cs, ss, ok := strings.Cut(v, ":")
	if !ok {
		return "", "", false
	}
	c, s := OpeningContext(cs), OpeningStatus(ss)
	if OpeningSentence(c, s) == "" {
		return "", "", false
	}
	return c, s, true
}
