package cluster

import "testing"

func TestKeyCanonicalisesAllRepresentations(t *testing.T) {
	tests := []struct {
		name string
		ref  any
		want string
	}{
		{"named constant", RVCOperationalState, "0x0061"},
		{"raw uint32", uint32(0x0061), "0x0061"},
		{"raw int", 0x0061, "0x0061"},
		{"descriptor", Descriptor{ID: RVCOperationalState, Name: "RvcOperationalState"}, "0x0061"},
		{"canonical string", "0x0061", "0x0061"},
		{"lowercase hex string", "0x61", "0x0061"},
		{"known name", "RvcOperationalState", "0x0061"},
		{"power source", PowerSource, "0x002F"},
		{"service area", ServiceArea, "0x0150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.ref); got != tt.want {
				t.Errorf("Key(%v) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestKeyUnknownReferencesAreStable(t *testing.T) {
	type custom struct{ X int }

	a := Key(custom{X: 1})
	b := Key(custom{X: 1})
	if a != b {
		t.Errorf("same unknown reference produced different keys: %q vs %q", a, b)
	}

	if Key(custom{X: 1}) == Key(custom{X: 2}) {
		t.Error("distinct unknown references produced the same key")
	}
}

func TestAttributeKeySeparatesClusterAndAttribute(t *testing.T) {
	got := AttributeKey(RVCRunMode, AttrCurrentMode)
	want := "0x0054/currentMode"
	if got != want {
		t.Errorf("AttributeKey = %q, want %q", got, want)
	}

	// All representations of the same cluster share the attribute key.
	if AttributeKey(uint32(0x54), AttrCurrentMode) != got {
		t.Error("numeric representation produced a different attribute key")
	}
	if AttributeKey(Descriptor{ID: RVCRunMode}, AttrCurrentMode) != got {
		t.Error("descriptor representation produced a different attribute key")
	}
}

func TestErrorStateEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b ErrorState
		want bool
	}{
		{"identical", ErrorState{ID: 0x41, Label: "stuck"}, ErrorState{ID: 0x41, Label: "stuck"}, true},
		{"no error equals itself", NoError, ErrorState{ID: ErrorStateNoError}, true},
		{"different id", ErrorState{ID: 0x41}, ErrorState{ID: 0x42}, false},
		{"different label", ErrorState{ID: 0x41, Label: "stuck"}, ErrorState{ID: 0x41, Label: "wedged"}, false},
		{"different details", ErrorState{ID: 0x41, Details: "under sofa"}, ErrorState{ID: 0x41}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorStateIsError(t *testing.T) {
	if NoError.IsError() {
		t.Error("NoError reported as an error")
	}
	if !(ErrorState{ID: ErrorStateStuck}).IsError() {
		t.Error("stuck not reported as an error")
	}
}
