package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxOffsetHours = 14

// offsetPattern matches "+3", "-03:30", "+0530" with an optional UTC/GMT prefix.
var offsetPattern = regexp.MustCompile(`^(?i:(?:utc|gmt)\s*)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// ParseTimezoneLocation resolves a profile timezone. It accepts IANA names
// ("Europe/Stockholm"), bare "UTC"/"GMT" and fixed offsets ("UTC+3", "-03:30").
// An empty name means UTC. Fixed offsets ignore DST.
func ParseTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)

	switch strings.ToUpper(tz) {
	case "", "UTC", "GMT":
		return time.UTC, nil
	}

	if offset, ok := parseOffset(tz); ok {
		return time.FixedZone(offsetName(offset), offset), nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// NormalizeTimezone validates tz and returns the name to persist.
// IANA names are kept as typed and offsets are rewritten as "UTC+03:00".
func NormalizeTimezone(tz string) (string, error) {
	loc, err := ParseTimezoneLocation(tz)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}

// parseOffset returns the offset east of UTC in seconds.
func parseOffset(s string) (int, bool) {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	if hours > maxOffsetHours || minutes >= 60 {
		return 0, false
	}

	offset := (hours*60 + minutes) * 60
	if m[1] == "-" {
		offset = -offset
	}
	return offset, true
}

func offsetName(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, offset/3600, offset%3600/60)
}
