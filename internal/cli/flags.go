package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/alexanderramin/soapnote/internal/soap"
	"github.com/spf13/pflag"
)

func addAddonFlag(fs *pflag.FlagSet, ids *[]string) {
	fs.StringSliceVarP(ids, "addon", "a", nil, "addon id to fold in (repeatable or comma-separated)")
}

// openingFlag parses --opening CONTEXT:STATUS into a service.Opening.
type openingFlag struct {
	value *service.Opening
}

var _ pflag.Value = (*openingFlag)(nil)

func (f *openingFlag) String() string {
	if f.value == nil {
		return ""
	}
	return string(f.value.Context) + ":" + string(f.value.Status)
}

func (f *openingFlag) Set(s string) error {
	c, st, ok := soap.ParseOpening(s)
	if !ok {
		return fmt.Errorf("want CONTEXT:STATUS with CONTEXT in %s and STATUS in %s",
			joinValues(soap.OpeningContexts), joinValues(soap.OpeningStatuses))
	}
	f.value = &service.Opening{Context: c, Status: st}
	return nil
}

func (f *openingFlag) Type() string { return "context:status" }

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, "|")
}
