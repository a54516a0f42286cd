package soap

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// FormatForCopy renders the whole note as clipboard text.
func FormatForCopy(fields domain.SoapFields) string {
	parts := make([]string, 0, len(domain.SoapKeys))
	for _, k := range domain.SoapKeys {
		parts = append(parts, "【"+string(k)+"】\n"+fields.Get(k))
	}
	return strings.Join(parts, "\n\n")
}
