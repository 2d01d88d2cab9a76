package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iudanet/starmap/internal/models"
)

// ColorPattern цвет ресурса в формате #rrggbb
var ColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColor checks the #rrggbb format
func ValidateColor(color string) error {
	if !ColorPattern.MatchString(color) {
		return fmt.Errorf("color must be in #rrggbb format")
	}
	return nil
}

// ValidateResource checks a new catalog entry
func ValidateResource(r *models.Resource) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if r.SortOrder < 0 {
		return fmt.Errorf("sort_order must not be negative")
	}
	return ValidateResourceUpdate(r)
}

// ValidateResourceUpdate checks the fields required when editing an entry
func ValidateResourceUpdate(r *models.Resource) error {
	if strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("label is required")
	}
	return ValidateColor(r.Color)
}
