// Package langdetect assigns an ISO 639-1 language code to a TV channel by
// combining three evidence sources: explicit patterns in the channel display
// name, metadata extracted from the channel website's HTML head, and
// script/statistical analysis of the website's visible text.
//
// # Pipeline
//
// The per-channel pipeline is sequential with one suspension point (the
// network fetch):
//
//	tvg-id → ExtractDomain → [cache] → FetchSite → HTML
//	       → {AnalyzeMetadata, VisibleText → AnalyzeText} → ResolvePage
//
// When any stage yields no domain or the fetch fails, control falls through
// to the name-based pattern matcher, which always produces an answer (worst
// case the "unknown" sentinel). Detect never returns an error to the caller.
//
// All table data in this file is initialised once at package load and shared
// read-only across concurrent detections.
package langdetect

import (
	"regexp"

	"github.com/abadojack/whatlanggo"
)

// Unknown is the sentinel language value assigned when no strategy resolves.
const Unknown = "unknown"

// languageNames maps full language names (and common aliases) to ISO 639-1
// codes. Bhojpuri has no 639-1 code; the 639-3 code "bho" is used.
var languageNames = map[string]string{
	"tamil":     "ta",
	"tamizh":    "ta",
	"telugu":    "te",
	"kannada":   "kn",
	"malayalam": "ml",
	"hindi":     "hi",
	"bengali":   "bn",
	"bangla":    "bn",
	"marathi":   "mr",
	"punjabi":   "pa",
	"punjab":    "pa",
	"gujarati":  "gu",
	"oriya":     "or",
	"odia":      "or",
	"assamese":  "as",
	"english":   "en",
	"urdu":      "ur",
	"bhojpuri":  "bho",
}

// supportedCodes is the closed set of codes the system assigns.
var supportedCodes = map[string]bool{
	"ta": true, "te": true, "kn": true, "ml": true, "hi": true,
	"bn": true, "gu": true, "pa": true, "mr": true, "or": true,
	"as": true, "en": true, "ur": true, "bho": true,
}

// scriptRange maps a contiguous Unicode block to the language it most likely
// carries. Devanagari is attributed to Hindi and Latin to English; the
// statistical pass downstream refines both.
type scriptRange struct {
	lo, hi rune
	code   string
}

var scriptRanges = []scriptRange{
	{0x0B80, 0x0BFF, "ta"}, // Tamil
	{0x0C00, 0x0C7F, "te"}, // Telugu
	{0x0C80, 0x0CFF, "kn"}, // Kannada
	{0x0D00, 0x0D7F, "ml"}, // Malayalam
	{0x0900, 0x097F, "hi"}, // Devanagari
	{0x0980, 0x09FF, "bn"}, // Bengali
	{0x0A80, 0x0AFF, "gu"}, // Gujarati
	{0x0A00, 0x0A7F, "pa"}, // Gurmukhi
}

// whatlangCodes maps trigram-classifier languages to supported codes.
// Languages the classifier knows but this system does not support are absent
// and treated as "no signal".
var whatlangCodes = map[whatlanggo.Lang]string{
	whatlanggo.Eng: "en",
	whatlanggo.Hin: "hi",
	whatlanggo.Tam: "ta",
	whatlanggo.Tel: "te",
	whatlanggo.Kan: "kn",
	whatlanggo.Mal: "ml",
	whatlanggo.Ben: "bn",
	whatlanggo.Guj: "gu",
	whatlanggo.Pan: "pa",
	whatlanggo.Mar: "mr",
	whatlanggo.Urd: "ur",
	whatlanggo.Ori: "or",
}

// whatlangOptions whitelists the classifier to the supported set so a page in
// an unrelated language can never be misattributed to a neighbour.
var whatlangOptions = whatlanggo.Options{
	Whitelist: func() map[whatlanggo.Lang]bool {
		m := make(map[whatlanggo.Lang]bool, len(whatlangCodes))
		for l := range whatlangCodes {
			m[l] = true
		}
		return m
	}(),
}

// languageMention holds a compiled "language name near a broadcast keyword"
// pattern, e.g. "Tamil channel", "Hindi news", "Telugu movies". The table is
// ordered; the first match wins.
type languageMention struct {
	code string
	re   *regexp.Regexp
}

func mentionPattern(names string) *regexp.Regexp {
	// names is an alternation of language names. Allows up to two filler
	// words between the name and the keyword ("Tamil language music channel").
	return regexp.MustCompile(`(?i)\b(?:` + names + `)(?:\s+\pL+){0,2}?\s+(?:channels?|tv|news|language|movies?|music|serials?|entertainment|shows?)\b`)
}

// mentionTable covers the nine major regional languages scanned for in page
// descriptions and body text.
var mentionTable = []languageMention{
	{"ta", mentionPattern(`tamil|tamizh`)},
	{"te", mentionPattern(`telugu`)},
	{"kn", mentionPattern(`kannada`)},
	{"ml", mentionPattern(`malayalam`)},
	{"hi", mentionPattern(`hindi`)},
	{"bn", mentionPattern(`bengali|bangla`)},
	{"gu", mentionPattern(`gujarati`)},
	{"pa", mentionPattern(`punjabi`)},
	{"mr", mentionPattern(`marathi`)},
}

// resourcePattern matches per-language hints in script/link resource paths,
// e.g. "/css/tamil.css" or "locale/ta-IN/strings.js".
type resourcePattern struct {
	code string
	re   *regexp.Regexp
}

var resourceTable = []resourcePattern{
	{"ta", regexp.MustCompile(`tamil|ta[-_]in`)},
	{"te", regexp.MustCompile(`telugu|te[-_]in`)},
	{"kn", regexp.MustCompile(`kannada|kn[-_]in`)},
	{"ml", regexp.MustCompile(`malayalam|ml[-_]in`)},
	{"hi", regexp.MustCompile(`hindi|hi[-_]in`)},
	{"bn", regexp.MustCompile(`bengali|bangla|bn[-_]in`)},
	{"gu", regexp.MustCompile(`gujarati|gu[-_]in`)},
	{"pa", regexp.MustCompile(`punjabi|pa[-_]in`)},
	{"mr", regexp.MustCompile(`marathi|mr[-_]in`)},
	{"ur", regexp.MustCompile(`urdu|ur[-_]in`)},
}

// explicitName holds a whole-word language-name pattern for the channel
// display name (tier 1 of the pattern matcher).
type explicitName struct {
	code string
	re   *regexp.Regexp
}

var explicitNameTable = []explicitName{
	{"ta", regexp.MustCompile(`(?i)\b(?:tamil|tamizh)\b`)},
	{"te", regexp.MustCompile(`(?i)\btelugu\b`)},
	{"kn", regexp.MustCompile(`(?i)\bkannada\b`)},
	{"ml", regexp.MustCompile(`(?i)\bmalayalam\b`)},
	{"hi", regexp.MustCompile(`(?i)\bhindi\b`)},
	{"bn", regexp.MustCompile(`(?i)\b(?:bengali|bangla)\b`)},
	{"mr", regexp.MustCompile(`(?i)\bmarathi\b`)},
	{"pa", regexp.MustCompile(`(?i)\b(?:punjabi|punjab)\b`)},
	{"gu", regexp.MustCompile(`(?i)\bgujarati\b`)},
	{"en", regexp.MustCompile(`(?i)\benglish\b`)},
	{"ur", regexp.MustCompile(`(?i)\burdu\b`)},
	{"bho", regexp.MustCompile(`(?i)\bbhojpuri\b`)},
}

// brandPattern maps known channel-brand keywords to a language (tier 2 of
// the pattern matcher). Ordered: specific regional brands first, then the
// broad Urdu/English/Hindi network names that would otherwise shadow them.
type brandPattern struct {
	code string
	re   *regexp.Regexp
}

var brandTable = []brandPattern{
	{"ta", regexp.MustCompile(`(?i)\b(?:sun tv|ktv|sun music|sun news|raj tv|kalaignar|vijay|jaya tv|jaya max|polimer|puthiya thalaimurai|thanthi|adithya|vasanth|mega tv|captain tv)\b`)},
	{"te", regexp.MustCompile(`(?i)\b(?:gemini|maa tv|etv telugu|zee telugu|tv9 telugu|ntv telugu|sakshi tv|10tv|v6 news|vanitha)\b`)},
	{"kn", regexp.MustCompile(`(?i)\b(?:udaya|colors kannada|zee kannada|suvarna|public tv|tv9 kannada|chandana)\b`)},
	{"ml", regexp.MustCompile(`(?i)\b(?:asianet|surya|mazhavil|flowers tv|amrita|kairali|manorama|mathrubhumi|janam tv|media one)\b`)},
	{"bn", regexp.MustCompile(`(?i)\b(?:star jalsha|zee bangla|colors bangla|abp ananda|24 ghanta|aakash aath|sangeet bangla)\b`)},
	{"mr", regexp.MustCompile(`(?i)\b(?:zee marathi|colors marathi|star pravah|abp majha|saam tv|fakt marathi)\b`)},
	{"pa", regexp.MustCompile(`(?i)\b(?:ptc|zee punjabi|chardikla|akaal|gurbaani|pitaara)\b`)},
	{"gu", regexp.MustCompile(`(?i)\b(?:colors gujarati|abp asmita|sandesh news|gstv|vtv news|mantavya)\b`)},
	{"bho", regexp.MustCompile(`(?i)\b(?:big ganga|bhojpuri cinema|anjan tv|dabangg)\b`)},
	{"ur", regexp.MustCompile(`(?i)\b(?:ary|geo tv|geo news|hum tv|ptv|dunya news|samaa|express news|bol news)\b`)},
	{"en", regexp.MustCompile(`(?i)\b(?:cnn|bbc|hbo|star movies|star world|discovery|national geographic|nat geo|cartoon network|animal planet|comedy central)\b`)},
	{"hi", regexp.MustCompile(`(?i)\b(?:aaj tak|zee news|zee tv|star plus|colors|sony|sab tv|ndtv|abp news|india tv|republic bharat|news18|dd national|star bharat|zee cinema|star gold)\b`)},
}

// genericBroadcastTerm detects channel-ish names with no language hint; such
// names default to Hindi, a deliberate bias toward the dominant broadcast
// language of the source dataset.
var genericBroadcastTerm = regexp.MustCompile(`(?i)\b(?:tv|channel|news|bharat|india|desi)\b`)
