package catalog

import "go.uber.org/zap"

// Report collects the advisory findings for one module.
type Report struct {
	ModuleID string
	Records  int
	Defects  []Defect
}

// Valid reports whether no defects were found.
func (r Report) Valid() bool {
	return len(r.Defects) == 0
}

// RecordDefects groups the defects of one record.
type RecordDefects struct {
	RecordID string
	Defects  []Defect
}

// ByRecord groups defects by record id in first-seen order.
func (r Report) ByRecord() []RecordDefects {
	var out []RecordDefects
	index := make(map[string]int)
	for _, d := range r.Defects {
		i, ok := index[d.RecordID]
		if !ok {
			i = len(out)
			index[d.RecordID] = i
			out = append(out, RecordDefects{RecordID: d.RecordID})
		}
		out[i].Defects = append(out[i].Defects, d)
	}
	return out
}

// LogReport writes one info line for a clean module, otherwise a warn
// summary followed by one warn line per invalid record.
func LogReport(logger *zap.Logger, r Report) {
	if logger == nil {
		return
	}
	if r.Valid() {
		logger.Info("module valid",
			zap.String("module", r.ModuleID),
			zap.Int("records", r.Records),
		)
		return
	}

	groups := r.ByRecord()
	logger.Warn("module has invalid records",
		zap.String("module", r.ModuleID),
		zap.Int("invalid", len(groups)),
		zap.Int("records", r.Records),
	)
	for _, g := range groups {
		defects := make([]string, 0, len(g.Defects))
		for _, d := range g.Defects {
			defects = append(defects, d.String())
		}
		logger.Warn("invalid record",
			zap.String("module", r.ModuleID),
			zap.String("record", g.RecordID),
			zap.Strings("defects", defects),
		)
	}
}
