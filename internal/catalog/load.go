package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnknownSchema is returned for files that match none of the known layouts.
var ErrUnknownSchema = errors.New("unknown module schema")

// Loaded is one module file converted to the canonical shape together with
// its advisory validation report.
type Loaded struct {
	Path       string
	Generation Generation
	Module     *domain.Module
	Report     Report
}

// LoadModule reads a .json, .yaml or .yml module file of any generation.
func LoadModule(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	loaded, err := Parse(data, fallbackModuleID(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	loaded.Path = path
	return loaded, nil
}

// Parse converts JSON module data. fallbackID names the module when the
// data carries no id of its own.
func Parse(data []byte, fallbackID string) (*Loaded, error) {
	gen, err := Detect(data)
	if err != nil {
		return nil, err
	}

	var (
		module  *domain.Module
		records []json.RawMessage
	)
	switch gen {
	case GenerationScenario:
		var f ScenarioModuleFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding scenario module: %w", err)
		}
		module = ConvertScenarioModule(&f)
		records = f.Scenarios
	case GenerationTemplate:
		var f TemplateModuleFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding template module: %w", err)
		}
		module = ConvertTemplateModule(&f)
	case GenerationDrugData:
		var f DrugDataFile
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decoding drug data: %w", err)
		}
		module = ConvertDrugData(&f, fallbackID)
	}

	if module.ModuleID == "" {
		module.ModuleID = fallbackID
	}

	report := Report{ModuleID: module.ModuleID, Records: len(module.Scenarios)}
	if gen == GenerationScenario {
		report.Defects = append(report.Defects, ValidateRecords(records)...)
	} else {
		report.Defects = append(report.Defects, ValidateFields(module.Scenarios)...)
	}
	report.Defects = append(report.Defects, ValidateModule(module)...)

	return &Loaded{Generation: gen, Module: module, Report: report}, nil
}

// Detect identifies the layout of JSON module data by its top-level keys.
func Detect(data []byte) (Generation, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return GenerationUnknown, fmt.Errorf("decoding module: %w", err)
	}
	switch {
	case keys["scenarios"] != nil:
		return GenerationScenario, nil
	case keys["drug_group"] != nil:
		return GenerationDrugData, nil
	case keys["templates"] != nil:
		return GenerationTemplate, nil
	}
	return GenerationUnknown, ErrUnknownSchema
}

// LoadDir loads every module file in dir, in file-name order. Files that
// fail to load are skipped and reported through the joined error; the
// modules that did load are returned either way.
func LoadDir(dir string) ([]*Loaded, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var (
		out  []*Loaded
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() || !isModuleFile(e.Name()) {
			continue
		}
		loaded, err := LoadModule(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, loaded)
	}
	return out, errors.Join(errs...)
}

func isModuleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func fallbackModuleID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// yamlToJSON re-encodes a YAML document as JSON so every layout goes through
// one decoder.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
