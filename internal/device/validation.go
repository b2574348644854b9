package device

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Validation constants.
const (
	maxNameLength = 100
	maxSlugLength = 50
	slugPattern   = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

	// Size limits for the state map to prevent memory exhaustion from a
	// misbehaving cloud response.
	maxStateKeys      = 100
	maxStringValueLen = 1024
)

var slugRegex = regexp.MustCompile(slugPattern)

// ValidateVacuum performs validation on a vacuum record.
// Returns an error describing the first validation failure found.
func ValidateVacuum(v *Vacuum) error {
	if v == nil {
		return ErrInvalidVacuum
	}

	if v.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidVacuum)
	}

	if err := ValidateName(v.Name); err != nil {
		return err
	}

	// Validate slug if provided (empty slug will be generated)
	if v.Slug != "" {
		if err := ValidateSlug(v.Slug); err != nil {
			return err
		}
	}

	if len(v.State) > maxStateKeys {
		return fmt.Errorf("%w: state exceeds max keys (%d)", ErrInvalidVacuum, maxStateKeys)
	}
	for k, val := range v.State {
		if s, ok := val.(string); ok && len(s) > maxStringValueLen {
			return fmt.Errorf("%w: state value %q exceeds max length", ErrInvalidVacuum, k)
		}
	}

	return nil
}

// ValidateName checks that a device name is non-empty and within limits.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// ValidateSlug checks that a slug is lowercase alphanumeric with hyphens.
func ValidateSlug(slug string) error {
	if len(slug) > maxSlugLength {
		return fmt.Errorf("%w: slug exceeds %d characters", ErrInvalidSlug, maxSlugLength)
	}
	if !slugRegex.MatchString(slug) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return nil
}

// GenerateSlug creates a URL-safe slug from a device name.
func GenerateSlug(name string) string {
	// Convert to lowercase
	slug := strings.ToLower(name)

	// Replace spaces and underscores with hyphens
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	// Remove any characters that aren't alphanumeric or hyphens
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	slug = result.String()

	// Remove leading/trailing hyphens and collapse multiple hyphens
	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	// Truncate if too long
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		// Don't end with a hyphen
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

// GenerateID creates a new unique identifier for locally created records.
// Bridged vacuums keep their vendor cloud ID instead.
func GenerateID() string {
	return uuid.New().String()
}
