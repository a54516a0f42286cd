package soap

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// Separator opens every block in a merged field.
const Separator = "----"

const headerMark = "▶ "

// MergeBlocks combines held blocks and the current note into one note.
// Each field is merged on its own: every block with non-blank text for the
// field contributes a separator, a header with its label, and the trimmed
// text. Chunks keep input order, current last, and are joined by a blank line.
func MergeBlocks(prior []domain.MergedBlock, current domain.SoapFields, currentLabel string) domain.SoapFields {
	all := make([]domain.MergedBlock, 0, len(prior)+1)
	all = append(all, prior...)
	all = append(all, domain.MergedBlock{TemplateLabel: currentLabel, Fields: current})

	var merged domain.SoapFields
	for _, key := range domain.SoapKeys {
		var chunks []string
		for _, b := range all {
			text := strings.TrimSpace(b.Fields.Get(key))
			if text == "" {
				continue
			}
			chunks = append(chunks, Separator+"\n"+headerMark+b.TemplateLabel+"\n"+text)
		}
		merged = merged.With(key, strings.Join(chunks, "\n\n"))
	}
	return merged
}
