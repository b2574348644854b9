package device

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateVacuum(t *testing.T) {
	tests := []struct {
		name    string
		vacuum  *Vacuum
		wantErr error
	}{
		{
			name:   "valid",
			vacuum: &Vacuum{ID: "vac-1", Name: "Upstairs", Slug: "upstairs"},
		},
		{
			name:    "nil",
			vacuum:  nil,
			wantErr: ErrInvalidVacuum,
		},
		{
			name:    "missing id",
			vacuum:  &Vacuum{Name: "Upstairs"},
			wantErr: ErrInvalidVacuum,
		},
		{
			name:    "empty name",
			vacuum:  &Vacuum{ID: "vac-1", Name: "   "},
			wantErr: ErrInvalidName,
		},
		{
			name:    "name too long",
			vacuum:  &Vacuum{ID: "vac-1", Name: strings.Repeat("x", maxNameLength+1)},
			wantErr: ErrInvalidName,
		},
		{
			name:    "bad slug",
			vacuum:  &Vacuum{ID: "vac-1", Name: "Upstairs", Slug: "Not A Slug"},
			wantErr: ErrInvalidSlug,
		},
		{
			name: "oversized state value",
			vacuum: &Vacuum{
				ID:    "vac-1",
				Name:  "Upstairs",
				State: State{"notes": strings.Repeat("x", maxStringValueLen+1)},
			},
			wantErr: ErrInvalidVacuum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVacuum(tt.vacuum)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateVacuum() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateVacuum() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Living Room Robot", "living-room-robot"},
		{"Upstairs_Vac", "upstairs-vac"},
		{"  Weird -- Name!! ", "weird-name"},
		{strings.Repeat("a", 80), strings.Repeat("a", maxSlugLength)},
	}

	for _, tt := range tests {
		if got := GenerateSlug(tt.name); got != tt.want {
			t.Errorf("GenerateSlug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeepCopyIsolation(t *testing.T) {
	original := &Vacuum{
		ID:    "vac-1",
		Name:  "Upstairs",
		State: State{"battery": 80, "rooms": []any{1, 2}},
	}

	cpy := original.DeepCopy()
	cpy.State["battery"] = 5
	cpy.State["rooms"].([]any)[0] = 99

	if original.State["battery"] != 80 {
		t.Error("scalar mutated through copy")
	}
	if original.State["rooms"].([]any)[0] != 1 {
		t.Error("nested slice mutated through copy")
	}
}
