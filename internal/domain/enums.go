package domain

type SideEffectPresence string

const (
	SideEffectAbsent        SideEffectPresence = "absent_or_not_observed"
	SideEffectPresent       SideEffectPresence = "present"
	SideEffectNotApplicable SideEffectPresence = "not_applicable"
)

// ValidSideEffectPresence is the canonical set of accepted sideEffectPresence strings.
var ValidSideEffectPresence = map[SideEffectPresence]bool{
	SideEffectAbsent:        true,
	SideEffectPresent:       true,
	SideEffectNotApplicable: true,
}

type PatchMode string

const (
	PatchAppend  PatchMode = "append"
	PatchPrepend PatchMode = "prepend"
	PatchReplace PatchMode = "replace"
)

// ValidPatchModes is the canonical set of accepted patch modes.
var ValidPatchModes = map[PatchMode]bool{
	PatchAppend:  true,
	PatchPrepend: true,
	PatchReplace: true,
}

type SoapKey string

const (
	KeyS SoapKey = "S"
	KeyO SoapKey = "O"
	KeyA SoapKey = "A"
	KeyP SoapKey = "P"
)

// SoapKeys lists the four note fields in note order.
var SoapKeys = []SoapKey{KeyS, KeyO, KeyA, KeyP}

// Valid reports whether k names one of the four note fields.
func (k SoapKey) Valid() bool {
	switch k {
	case KeyS, KeyO, KeyA, KeyP:
		return true
	}
	return false
}
