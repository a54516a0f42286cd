package domain

// SoapFields holds the four note fields. It is a plain value: copying it
// copies the note.
type SoapFields struct {
	S string `json:"S"`
	O string `json:"O"`
	A string `json:"A"`
	P string `json:"P"`
}

// Get returns the text of field k, or "" for an unknown key.
func (f SoapFields) Get(k SoapKey) string {
	switch k {
	case KeyS:
		return f.S
	case KeyO:
		return f.O
	case KeyA:
		return f.A
	case KeyP:
		return f.P
	}
	return ""
}

// With returns a copy of f with field k set to text. Unknown keys leave the
// copy unchanged.
func (f SoapFields) With(k SoapKey, text string) SoapFields {
	switch k {
	case KeyS:
		f.S = text
	case KeyO:
		f.O = text
	case KeyA:
		f.A = text
	case KeyP:
		f.P = text
	}
	return f
}

// IsEmpty reports whether every field is blank.
func (f SoapFields) IsEmpty() bool {
	for _, k := range SoapKeys {
		if !isBlank(f.Get(k)) {
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '　':
			continue
		}
		return false
	}
	return true
}
