package validators

import (
	"regexp"
	"strings"
)

// Vietnamese plates like "51F-123.45" plus a tolerant fallback for older
// series; enough to keep garbage out of the vehicle table.
var plateRe = regexp.MustCompile(`^[0-9]{2}[A-Z]{1,2}[0-9]?[-. ]?[0-9]{3,5}(\.[0-9]{2})?$`)

func NormalizeLicensePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func IsLicensePlateValid(plate string) bool {
	plate = NormalizeLicensePlate(plate)
	if plate == "" {
		return false
	}
	if plateRe.MatchString(plate) {
		return true
	}

	// Foreign/legacy plates: plain alphanumerics with separators.
	if len(plate) < 5 || len(plate) > 12 {
		return false
	}
	for _, r := range plate {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r == '-', r == '.', r == ' ':
		default:
			return false
		}
	}
	return true
}
