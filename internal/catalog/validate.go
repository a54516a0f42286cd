package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Defect codes.
const (
	CodeMissingKey        = "MISSING_KEY"
	CodeEmptySoap         = "EMPTY_SOAP"
	CodeInvalidSEP        = "INVALID_SEP"
	CodeEmptyScenarioType = "EMPTY_SCENARIO_TYPE"
	CodeMalformedRecord   = "MALFORMED_RECORD"
	CodeDuplicateID       = "DUPLICATE_ID"
	CodeInvalidPatch      = "INVALID_PATCH"
	CodeUnknownAddon      = "UNKNOWN_ADDON"
)

var codeRank = map[string]int{
	CodeMalformedRecord:   0,
	CodeMissingKey:        1,
	CodeEmptySoap:         2,
	CodeInvalidSEP:        3,
	CodeEmptyScenarioType: 4,
}

const unknownRecord = "(unknown)"

// Defect is one advisory data-integrity finding. Defects never stop a
// module from loading.
type Defect struct {
	RecordID string
	Code     string
	Field    string
	Message  string
}

func (d Defect) String() string {
	return fmt.Sprintf("%s(%s): %s", d.Code, d.Field, d.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidateRecords checks raw scenario records for required keys, non-blank
// S/O/A/P and scenarioType, and a known sideEffectPresence. A record with
// missing keys reports only those.
func ValidateRecords(records []json.RawMessage) []Defect {
	var out []Defect
	for _, raw := range records {
		out = append(out, validateRecord(raw)...)
	}
	return out
}

func validateRecord(raw json.RawMessage) []Defect {
	var rec ScenarioImport
	decodeErr := json.Unmarshal(raw, &rec)

	id := unknownRecord
	if rec.ID != nil && *rec.ID != "" {
		id = *rec.ID
	}

	var (
		defects  []Defect
		badField string
	)
	if decodeErr != nil {
		d := Defect{RecordID: id, Code: CodeMalformedRecord, Message: decodeErr.Error()}
		// A wrong-typed value still leaves a zero value behind; it is
		// reported here and not again as blank.
		var ute *json.UnmarshalTypeError
		if errors.As(decodeErr, &ute) {
			badField = ute.Field
			d.Field = ute.Field
			d.Message = fmt.Sprintf("%s holds a %s, want %s", ute.Field, ute.Value, ute.Type)
		}
		defects = append(defects, d)
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(&rec); errors.As(err, &verrs) {
		var missing, other []Defect
		for _, fe := range verrs {
			if badField != "" && fe.Field() == badField {
				continue
			}
			d := fieldDefect(id, fe)
			if d.Code == CodeMissingKey {
				missing = append(missing, d)
			} else {
				other = append(other, d)
			}
		}
		if len(missing) > 0 {
			defects = append(defects, missing...)
		} else {
			defects = append(defects, other...)
		}
	}

	sort.SliceStable(defects, func(i, j int) bool {
		return codeRank[defects[i].Code] < codeRank[defects[j].Code]
	})
	return defects
}

func fieldDefect(id string, fe validator.FieldError) Defect {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return Defect{id, CodeMissingKey, field, fmt.Sprintf("required key %q is missing", field)}
	case "oneof":
		return Defect{id, CodeInvalidSEP, field, fmt.Sprintf("%s value %q is invalid; valid values: %s",
			field, fmt.Sprint(fe.Value()), strings.Join(strings.Fields(fe.Param()), " | "))}
	case "notblank":
		if field == "scenarioType" {
			return Defect{id, CodeEmptyScenarioType, field, "scenarioType is empty"}
		}
		return Defect{id, CodeEmptySoap, field, fmt.Sprintf("SOAP field %q is empty", field)}
	}
	return Defect{id, CodeMalformedRecord, field, fe.Error()}
}

// ValidateFields reports blank S/O/A/P text on canonical scenarios. It
// covers the older layouts, which have no raw records to check.
func ValidateFields(scenarios []domain.Scenario) []Defect {
	var out []Defect
	for _, sc := range scenarios {
		id := domain.CoalesceStr(sc.ID, unknownRecord)
		for _, k := range domain.SoapKeys {
			if strings.TrimSpace(sc.Fields.Get(k)) == "" {
				out = append(out, Defect{id, CodeEmptySoap, string(k), fmt.Sprintf("SOAP field %q is empty", k)})
			}
		}
	}
	return out
}

// ValidateModule runs the cross-record checks: duplicate scenario and addon
// ids, patches with an unknown target or mode, and declared addon ids the
// module does not define.
func ValidateModule(m *domain.Module) []Defect {
	var out []Defect

	seen := make(map[string]int)
	for _, sc := range m.Scenarios {
		if sc.ID == "" {
			continue
		}
		seen[sc.ID]++
		if seen[sc.ID] == 2 {
			out = append(out, Defect{sc.ID, CodeDuplicateID, "id", fmt.Sprintf("scenario id %q is not unique", sc.ID)})
		}
	}

	addonIDs := make(map[string]bool, len(m.Addons))
	for _, a := range m.Addons {
		if addonIDs[a.ID] {
			out = append(out, Defect{a.ID, CodeDuplicateID, "addonId", fmt.Sprintf("addon id %q is not unique", a.ID)})
		}
		addonIDs[a.ID] = true

		for i, p := range a.Patches {
			if err := validate.Var(string(p.Target), "oneof=S O A P"); err != nil {
				out = append(out, Defect{a.ID, CodeInvalidPatch, fmt.Sprintf("patches[%d].target", i),
					fmt.Sprintf("target %q is not one of S, O, A, P", p.Target)})
			}
			if err := validate.Var(string(p.Mode), "oneof=append prepend replace"); err != nil {
				out = append(out, Defect{a.ID, CodeInvalidPatch, fmt.Sprintf("patches[%d].mode", i),
					fmt.Sprintf("mode %q is not one of append, prepend, replace", p.Mode)})
			}
		}
	}

	for _, sc := range m.Scenarios {
		for _, id := range sc.AddonIDs {
			if !addonIDs[id] {
				out = append(out, Defect{domain.CoalesceStr(sc.ID, unknownRecord), CodeUnknownAddon, "addonIds",
					fmt.Sprintf("addon %q is not defined in the module", id)})
			}
		}
	}
	return out
}
