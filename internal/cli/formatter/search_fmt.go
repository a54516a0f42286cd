package formatter

import (
	"fmt"

	"github.com/alexanderramin/soapnote/internal/search"
)

// FormatSuggestions renders ranked suggestions with their score.
func FormatSuggestions(query string, hits []search.Suggestion) string {
	if len(hits) == 0 {
		return Dim(fmt.Sprintf("No suggestions for %q.", query)) + "\n"
	}
	headers := []string{"SCORE", "SCENARIO", "DRUG", "GROUP", "ID"}
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		drug := h.DrugDisplayLabel
		if drug == "" {
			drug = "--"
		}
		rows = append(rows, []string{
			scoreBadge(h.Score),
			Bold(h.ShortLabel),
			drug,
			GroupChip(h.Group),
			Dim(h.ModuleID + "/" + h.ScenarioID),
		})
	}
	return RenderTable(headers, rows)
}

func scoreBadge(score int) string {
	s := fmt.Sprint(score)
	switch {
	case score >= search.ScoreNameAliasExact:
		return StyleGreen.Render(s)
	case score >= search.ScoreTitlePrefix:
		return StyleYellow.Render(s)
	default:
		return Dim(s)
	}
}
