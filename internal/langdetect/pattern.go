package langdetect

// ExplicitNameLanguage reports a language named outright in the channel
// display name ("XYZ Tamil News" → "ta"). Whole-word matching; the first
// language in the fixed table order wins. Returns "" when the name mentions
// no language. This is the strongest strategy in end-to-end detection: an
// operator-written name is treated as ground truth.
func ExplicitNameLanguage(name string) string {
	for _, e := range explicitNameTable {
		if e.re.MatchString(name) {
			return e.code
		}
	}
	return ""
}

// PatternLanguage guesses a language from channel-brand keywords in the
// display name ("Sun TV" → "ta"). Total: when no brand matches, names
// containing a generic broadcast term default to Hindi, and everything else
// gets the "unknown" sentinel. Never fails.
func PatternLanguage(name string) string {
	for _, b := range brandTable {
		if b.re.MatchString(name) {
			return b.code
		}
	}
	if genericBroadcastTerm.MatchString(name) {
		return "hi"
	}
	return Unknown
}
