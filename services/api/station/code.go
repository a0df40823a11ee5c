package station

import "strings"

// CodeWidth is the canonical width of a station code. The metadata table and
// the traffic logs disagree on leading zeros ("150" vs "0150"); every join
// and lookup must pass both sides through Normalize first.
const CodeWidth = 4

// NameSuffix is the suffix the metadata source appends to station names.
// Historical log rows carry bare names, so name-keyed joins must suffix both
// sides with EnsureSuffix.
const NameSuffix = "역"

// Normalize returns the canonical zero-padded form of a station code.
// Codes already at or beyond CodeWidth characters are returned unchanged,
// never truncated. Empty input stays empty: padding it would produce an
// all-zero key that joins rows which share no station.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if len(code) >= CodeWidth {
		return code
	}
	return strings.Repeat("0", CodeWidth-len(code)) + code
}

// EnsureSuffix appends NameSuffix to a station name when it is missing.
func EnsureSuffix(name string) string {
	if name == "" {
		return name
	}
	if strings.HasSuffix(name, NameSuffix) {
		return name
	}
	return name + NameSuffix
}
