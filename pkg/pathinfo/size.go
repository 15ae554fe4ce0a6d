package pathinfo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Size conversion constants.
const (
	// Decimal (1000-based) units
	BytesPerKB = 1000
	BytesPerMB = 1000 * 1000
	BytesPerGB = 1000 * 1000 * 1000
	BytesPerTB = 1000 * 1000 * 1000 * 1000

	// Binary (1024-based) units
	BytesPerKiB = 1024
	BytesPerMiB = 1024 * 1024
	BytesPerGiB = 1024 * 1024 * 1024
	BytesPerTiB = 1024 * 1024 * 1024 * 1024
)

// Size is a view over a file size offering both decimal and binary units.
type Size struct {
	Bytes int64
}

// KB returns the size in kilobytes (1000 bytes).
func (s Size) KB() float64 { return float64(s.Bytes) / BytesPerKB }

// MB returns the size in megabytes (1000^2 bytes).
func (s Size) MB() float64 { return float64(s.Bytes) / BytesPerMB }

// GB returns the size in gigabytes (1000^3 bytes).
func (s Size) GB() float64 { return float64(s.Bytes) / BytesPerGB }

// TB returns the size in terabytes (1000^4 bytes).
func (s Size) TB() float64 { return float64(s.Bytes) / BytesPerTB }

// KiB returns the size in kibibytes (1024 bytes).
func (s Size) KiB() float64 { return float64(s.Bytes) / BytesPerKiB }

// MiB returns the size in mebibytes (1024^2 bytes).
func (s Size) MiB() float64 { return float64(s.Bytes) / BytesPerMiB }

// GiB returns the size in gibibytes (1024^3 bytes).
func (s Size) GiB() float64 { return float64(s.Bytes) / BytesPerGiB }

// TiB returns the size in tebibytes (1024^4 bytes).
func (s Size) TiB() float64 { return float64(s.Bytes) / BytesPerTiB }

// String renders the size with the largest binary unit that keeps the value
// above one, e.g. "1.5 MiB".
func (s Size) String() string {
	switch {
	case s.Bytes >= BytesPerTiB:
		return fmt.Sprintf("%.1f TiB", s.TiB())
	case s.Bytes >= BytesPerGiB:
		return fmt.Sprintf("%.1f GiB", s.GiB())
	case s.Bytes >= BytesPerMiB:
		return fmt.Sprintf("%.1f MiB", s.MiB())
	case s.Bytes >= BytesPerKiB:
		return fmt.Sprintf("%.1f KiB", s.KiB())
	default:
		return fmt.Sprintf("%d B", s.Bytes)
	}
}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([KMGT]I?B?|B)$`)

var sizeMultipliers = map[string]int64{
	"B":   1,
	"KB":  BytesPerKB,
	"MB":  BytesPerMB,
	"GB":  BytesPerGB,
	"TB":  BytesPerTB,
	"KIB": BytesPerKiB,
	"MIB": BytesPerMiB,
	"GIB": BytesPerGiB,
	"TIB": BytesPerTiB,
}

// ParseSize parses a size string and returns the size in bytes.
//
// Examples:
//
//	"100"    -> 100 bytes
//	"1KB"    -> 1000 bytes
//	"1KiB"   -> 1024 bytes
//	"2.5MB"  -> 2500000 bytes
//	"1.5GiB" -> 1610612736 bytes
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))

	// Plain numbers are bytes
	if n, err := strconv.ParseInt(sizeStr, 10, 64); err == nil {
		return n, nil
	}

	match := sizePattern.FindStringSubmatch(sizeStr)
	if match == nil {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}

	unit := match[2]
	// A bare unit letter like "K" or "Ki" means KB / KiB
	if !strings.HasSuffix(unit, "B") {
		unit += "B"
	}

	multiplier, known := sizeMultipliers[unit]
	if !known {
		return 0, fmt.Errorf("unknown size unit: %s", match[2])
	}

	return int64(value * float64(multiplier)), nil
}
