package soap

import "github.com/alexanderramin/soapnote/internal/domain"

// DefaultClosingSentences are the closing lines kept at the end of P when a
// module does not declare its own.
var DefaultClosingSentences = []string{
	"次回受診時に経過を確認する。",
	"次回来局時に経過を確認する。",
	"Will confirm clinical course at next visit.",
}

type composeConfig struct {
	closings []string
}

// Option adjusts Compose.
type Option func(*composeConfig)

// WithClosingSentences replaces the closing-sentence whitelist. An empty
// list keeps the defaults.
func WithClosingSentences(sentences ...string) Option {
	return func(c *composeConfig) {
		if len(sentences) > 0 {
			c.closings = sentences
		}
	}
}

// Compose builds the note for sc with the selected addons folded in.
//
// Addons are applied in the scenario's declared order (or the catalog order
// when it declares none), never in selection order, so the same selection
// always produces the same text. Each addon is applied at most once and
// unknown ids are skipped. Closing sentences in P are then moved to the end.
func Compose(sc domain.Scenario, selected Selection, addons *AddonCatalog, opts ...Option) domain.SoapFields {
	cfg := composeConfig{closings: DefaultClosingSentences}
	for _, opt := range opts {
		opt(&cfg)
	}

	fields := sc.Fields

	applied := make(map[string]bool)
	for _, id := range addons.DeclaredOrder(sc) {
		if !selected.Has(id) || applied[id] {
			continue
		}
		addon, ok := addons.Lookup(id)
		if !ok {
			continue
		}
		applied[id] = true
		fields = ApplyPatches(fields, addon.Patches)
	}

	fields.P = RelocateClosing(fields.P, cfg.closings)
	return fields
}
