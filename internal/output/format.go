package output

import "strings"

// Format specifies how structured documents are printed.
type Format string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML Format = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON Format = "json"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
// Returns FormatYAML if the string is empty or invalid.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// ValidFormats returns a slice of valid format strings.
func ValidFormats() []string {
	return []string{"yaml", "json"}
}
