package jre

import (
	"strings"
)

// vendorKeywords in fixed priority order; first match wins.
var vendorKeywords = []struct {
	keyword string
	vendor  string
}{
	{"openjdk", VendorOpenJDK},
	{"oracle", VendorOracle},
	{"adoptium", VendorAdoptium},
	{"microsoft", VendorMicrosoft},
	{"zulu", VendorZulu},
	{"corretto", VendorCorretto},
}

// parseBanner fingerprints a version-probe banner into a Candidate
// (without Path). Returns ok=false when no version number could be
// parsed — such candidates are never emitted.
func parseBanner(text string) (Candidate, bool) {
	version, ok := parseMajorVersion(text)
	if !ok || version < 1 {
		return Candidate{}, false
	}

	lower := strings.ToLower(text)

	vendor := VendorUnknown
	for _, vk := range vendorKeywords {
		if strings.Contains(lower, vk.keyword) {
			vendor = vk.vendor
			break
		}
	}

	bitness := 64
	if strings.Contains(lower, "32-bit") {
		bitness = 32
	}

	// "jdk" wins over "jre"; default JRE.
	kind := KindJRE
	if strings.Contains(lower, "jdk") {
		kind = KindJDK
	}

	return Candidate{
		Version: version,
		Vendor:  vendor,
		Bitness: bitness,
		Kind:    kind,
		Valid:   version >= MinLaunchVersion,
	}, true
}

// parseMajorVersion extracts the major version from banner text.
// Legacy version strings like "1.8.0_301" yield the minor component (8);
// otherwise the leading integer of the version token before the first
// '.' or '"' is used (e.g. "17.0.2" yields 17).
func parseMajorVersion(text string) (int, bool) {
	if i := strings.Index(text, `"1.`); i >= 0 {
		return leadingInt(text[i+len(`"1.`):])
	}
	rest := text
	if i := strings.IndexByte(text, '"'); i >= 0 {
		rest = text[i+1:]
	}
	// Skip to the first digit of the version token.
	start := strings.IndexFunc(rest, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0, false
	}
	return leadingInt(rest[start:])
}

// leadingInt parses the run of digits at the start of s.
func leadingInt(s string) (int, bool) {
	n := 0
	i := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<20 {
			return 0, false
		}
	}
	if i == 0 {
		return 0, false
	}
	return n, true
}
