package flags

import "fmt"

// ValidateLimit validates that limit is non-negative.
func ValidateLimit(v int) error {
	if v < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", v)
	}
	return nil
}

// ValidatePort validates that port is between 1 and 65535.
func ValidatePort(v int) error {
	if v < 1 || v > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", v)
	}
	return nil
}

// ValidateEncoding accepts utf-8 under its common spellings.
func ValidateEncoding(v string) error {
	switch v {
	case "utf-8", "utf8", "UTF-8", "UTF8":
		return nil
	default:
		return fmt.Errorf("unsupported encoding %q: only utf-8 is supported", v)
	}
}
