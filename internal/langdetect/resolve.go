package langdetect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Body-text signal weights for aggregation. Non-English body text outweighs
// any single metadata signal even before halving; English body text does
// not, since English-looking Latin text is the least trustworthy signal.
const (
	weightBodyEnglish    = 8
	weightBodyNonEnglish = 15
)

// Conflict-resolution thresholds.
const (
	overrideMinConfidence      = 0.5
	shortCircuitMinConfidence  = 0.7
	metadataDemotionMultiplier = 0.5
)

// PageDecision is the outcome of full-page resolution, with both analyzer
// verdicts retained for diagnostics.
type PageDecision struct {
	Language string
	Meta     MetaResult
	Body     Result
}

// ResolvePage turns a fetched HTML document into a single language code by
// reconciling head metadata against body-text analysis:
//
//   - Metadata signals enter aggregation at half weight — head metadata
//     frequently reflects the site template's language, not the content's.
//   - When metadata says English but the body reads as a non-English
//     language with confidence ≥ 0.5, the body wins outright. This is the
//     "English template, regional content" case that motivates the whole
//     resolver.
//   - A body verdict with confidence ≥ 0.7 wins regardless of metadata.
//   - Otherwise the combined signal list decides; the result may be "".
//
// metadataOnly skips body analysis entirely and returns the raw aggregated
// metadata language — a fast diagnostic path, not the production default.
func ResolvePage(rawHTML string, metadataOnly bool) PageDecision {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return PageDecision{}
	}

	meta := AnalyzeMetadata(doc)
	if metadataOnly {
		return PageDecision{Language: meta.Language, Meta: meta}
	}

	combined := make([]Signal, 0, len(meta.Signals)+1)
	for _, s := range meta.Signals {
		s.Weight *= metadataDemotionMultiplier
		combined = append(combined, s)
	}

	body := AnalyzeText(VisibleText(rawHTML))
	if body.Language != "" {
		w := float64(weightBodyNonEnglish)
		if body.Language == "en" {
			w = weightBodyEnglish
		}
		combined = append(combined, Signal{Source: SourceBodyText, Value: body.Language, Weight: w})

		if meta.Language == "en" && body.Language != "en" && body.Confidence >= overrideMinConfidence {
			return PageDecision{Language: body.Language, Meta: meta, Body: body}
		}
		if body.Confidence >= shortCircuitMinConfidence {
			return PageDecision{Language: body.Language, Meta: meta, Body: body}
		}
	}

	return PageDecision{Language: Aggregate(combined), Meta: meta, Body: body}
}
