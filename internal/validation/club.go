package validation

import (
	"fmt"
	"strings"
)

var reservedClubNames = map[string]struct{}{
	"admin":         {},
	"api":           {},
	"auth":          {},
	"clubs":         {},
	"posts":         {},
	"comments":      {},
	"tags":          {},
	"reports":       {},
	"notifications": {},
	"settings":      {},
	"login":         {},
	"signup":        {},
}

// ValidateClubName validates club name length and reserved names.
func ValidateClubName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 3 {
		return fmt.Errorf("club name must be at least 3 characters long")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("club name must not exceed 100 characters")
	}
	if _, exists := reservedClubNames[strings.ToLower(trimmed)]; exists {
		return fmt.Errorf("club name is reserved")
	}
	return nil
}
