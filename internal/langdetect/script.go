package langdetect

import (
	"github.com/abadojack/whatlanggo"
)

// Analysis sample limits. The script census runs over the first sampleLimit
// characters; the trigram classifier sees the full cleaned text.
const (
	minTextLen    = 50
	minStatLen    = 100
	sampleLimit   = 5000
	maxConfidence = 0.95
)

// Result is one analyzer's verdict. Language == "" always pairs with
// Confidence == 0 — "no opinion", not a fault.
type Result struct {
	Language   string
	Confidence float64
	Method     string
}

// Body-text analysis methods, in the order the steps run.
const (
	MethodBodyMention      = "body-language-mention"
	MethodInsufficientText = "insufficient-text"
	MethodScriptDetection  = "script-detection"
	MethodStatDetect       = "stat-detect"
	MethodStatEnglish      = "stat-english"
	MethodScriptFallback   = "script-fallback"
	MethodUndetermined     = "undetermined"
)

// AnalyzeText classifies a block of visible text into one of the supported
// languages. Steps, returning at the first decisive one:
//
//  1. An explicit "language name + broadcast keyword" mention ("a famous
//     Tamil language music channel") decides immediately — it beats every
//     statistical signal and works on text too short for them.
//  2. Text under 50 characters carries too little signal: no opinion.
//  3. Census of Unicode script ranges over the first 5000 characters; a
//     dominant non-Latin script (count > 50, share > 5%) decides with
//     confidence proportional to its share, capped at 0.95.
//  4. Trigram classification (whatlanggo) over the full text when it is at
//     least 100 characters; a non-English verdict scores 0.7, an English one
//     0.6 but only when Latin actually dominates the sample.
//  5. A weaker script-census fallback (count > 20) scores 0.4.
func AnalyzeText(text string) Result {
	clean := collapseWhitespace(text)

	if code := bodyMention(clean); code != "" {
		return Result{Language: code, Confidence: 0.85, Method: MethodBodyMention}
	}

	runes := []rune(clean)
	if len(runes) < minTextLen {
		return Result{Method: MethodInsufficientText}
	}

	sample := runes
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	counts := countScripts(sample)
	winner, winnerCount := dominantScript(counts)
	sampleLen := float64(len(sample))
	share := float64(winnerCount) / sampleLen

	if winnerCount > 50 && share > 0.05 && winner != "en" {
		conf := share * 10
		if conf > maxConfidence {
			conf = maxConfidence
		}
		return Result{Language: winner, Confidence: conf, Method: MethodScriptDetection}
	}

	if len(runes) >= minStatLen {
		info := whatlanggo.DetectWithOptions(clean, whatlangOptions)
		if code, ok := whatlangCodes[info.Lang]; ok {
			if code != "en" {
				return Result{Language: code, Confidence: 0.7, Method: MethodStatDetect}
			}
			latinShare := float64(counts["en"]) / sampleLen
			if latinShare > 0.30 && winner == "en" {
				return Result{Language: "en", Confidence: 0.6, Method: MethodStatEnglish}
			}
		}
	}

	if winnerCount > 20 {
		return Result{Language: winner, Confidence: 0.4, Method: MethodScriptFallback}
	}
	return Result{Method: MethodUndetermined}
}

// bodyMention returns the language of the first explicit language-name
// mention in text, "" when none.
func bodyMention(text string) string {
	for _, m := range mentionTable {
		if m.re.MatchString(text) {
			return m.code
		}
	}
	return ""
}

// countScripts tallies characters per script range. Latin letters are
// counted under "en".
func countScripts(sample []rune) map[string]int {
	counts := make(map[string]int, len(scriptRanges)+1)
	for _, r := range sample {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			counts["en"]++
			continue
		}
		for _, sr := range scriptRanges {
			if r >= sr.lo && r <= sr.hi {
				counts[sr.code]++
				break
			}
		}
	}
	return counts
}

// dominantScript picks the script with the highest count. Iteration follows
// the fixed table order (Latin last) so the result is deterministic.
func dominantScript(counts map[string]int) (code string, count int) {
	for _, sr := range scriptRanges {
		if counts[sr.code] > count {
			code, count = sr.code, counts[sr.code]
		}
	}
	if counts["en"] > count {
		code, count = "en", counts["en"]
	}
	return code, count
}
