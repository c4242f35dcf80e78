package langdetect

import "strings"

// SignalSource identifies where a piece of language evidence came from. The
// set is closed; the aggregator treats every source the same way and only
// the weights differ.
type SignalSource string

const (
	SourceHTMLLang            SignalSource = "html-lang"
	SourceMetaContentLanguage SignalSource = "meta-content-language"
	SourceOGLocale            SignalSource = "og-locale"
	SourceMetaLanguage        SignalSource = "meta-language"
	SourceDescriptionHint     SignalSource = "description-hint"
	SourceResourceAnalysis    SignalSource = "resource-analysis"
	SourceBodyText            SignalSource = "body-text"
)

// Signal is one weighted piece of evidence about a page's language. Value is
// raw (attribute value, language name, locale string) and is normalised only
// inside Aggregate. Signals are created and consumed within one detection
// call; they are never persisted.
type Signal struct {
	Source SignalSource
	Value  string
	Weight float64
}

// NormalizeCode reduces a raw signal value to a supported ISO 639-1 code:
// a bare code ("ta"), a locale-qualified code ("ta-IN", "en_US"), or a full
// language name ("Tamil", "bangla"). Returns "" when the value does not map
// to a supported language.
func NormalizeCode(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	if supportedCodes[v] {
		return v
	}
	// Strip a locale suffix: "ta-IN", "en_us".
	if i := strings.IndexAny(v, "-_"); i > 0 {
		if base := v[:i]; supportedCodes[base] {
			return base
		}
	}
	if code, ok := languageNames[v]; ok {
		return code
	}
	return ""
}

// Aggregate sums signal weights per normalised language code and returns the
// code with the strictly highest total. Signals that fail to normalise are
// discarded. Ties break toward the code seen first, so the caller's signal
// ordering is part of the contract. Returns "" when no signal normalises.
func Aggregate(signals []Signal) string {
	totals := make(map[string]float64, len(signals))
	var order []string
	for _, s := range signals {
		code := NormalizeCode(s.Value)
		if code == "" {
			continue
		}
		if _, seen := totals[code]; !seen {
			order = append(order, code)
		}
		totals[code] += s.Weight
	}
	best := ""
	bestTotal := 0.0
	for _, code := range order {
		if totals[code] > bestTotal {
			best = code
			bestTotal = totals[code]
		}
	}
	return best
}
