package soap

import (
	"testing"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestApplyPatch(t *testing.T) {
	tests := []struct {
		name    string
		current string
		patch   domain.Patch
		want    string
	}{
		{"append to text", "a", domain.Patch{Mode: domain.PatchAppend, Value: "b"}, "a\nb"},
		{"append to empty", "", domain.Patch{Mode: domain.PatchAppend, Value: "b"}, "b"},
		{"append trims value", "a", domain.Patch{Mode: domain.PatchAppend, Value: "  b \n"}, "a\nb"},
		{"prepend to text", "a", domain.Patch{Mode: domain.PatchPrepend, Value: "b"}, "b\na"},
		{"prepend to empty", "", domain.Patch{Mode: domain.PatchPrepend, Value: "b"}, "b"},
		{"replace", "a", domain.Patch{Mode: domain.PatchReplace, Value: " b "}, "b"},
		{"replace empty", "a", domain.Patch{Mode: domain.PatchReplace, Value: ""}, ""},
		{"unknown mode", "a", domain.Patch{Mode: "insert", Value: "b"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyPatch(tt.current, tt.patch))
		})
	}
}

func TestApplyPatches_TouchesOnlyTargetField(t *testing.T) {
	in := domain.SoapFields{S: "s", O: "o", A: "a", P: "p"}
	out := ApplyPatches(in, []domain.Patch{
		{Target: domain.KeyO, Mode: domain.PatchAppend, Value: "x"},
		{Target: "Q", Mode: domain.PatchReplace, Value: "ignored"},
	})

	assert.Equal(t, domain.SoapFields{S: "s", O: "o\nx", A: "a", P: "p"}, out)
	assert.Equal(t, "o", in.O, "input must not be mutated")
}
