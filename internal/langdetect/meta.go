package langdetect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata carries the raw fields pulled from an HTML head. Diagnostic
// output only — decision logic consumes the Signals, never these fields.
type Metadata struct {
	Title         string
	Description   string
	OGTitle       string
	OGDescription string
	OGSiteName    string

	HTMLLang        string
	ContentLanguage string
	OGLocale        string
	MetaLanguage    string

	// Resources is the lower-cased concatenation of every script src and
	// link href on the page.
	Resources string
}

// Confidence tiers for metadata-only results.
const (
	TierHigh = "high"
	TierLow  = "low"
)

// MetaResult is the metadata analyzer's output: the aggregated language, a
// coarse confidence tier, the raw signal list (for the full-page resolver to
// re-weigh), and the extracted fields.
type MetaResult struct {
	Language string
	Tier     string
	Signals  []Signal
	Meta     Metadata
}

// Signal weights for metadata sources. html lang is the strongest single
// structural hint; resource paths the weakest.
const (
	weightHTMLLang        = 10
	weightDescriptionHint = 9
	weightContentLanguage = 8
	weightOGLocale        = 7
	weightMetaLanguage    = 7
	weightResources       = 3
)

// AnalyzeMetadata extracts language signals from an HTML document's head:
// the html element's lang attribute, content-language / og:locale / language
// metas, explicit language-name mentions in the title and descriptions, and
// per-language hints in script/link resource paths. Each signal is emitted
// independently; a page may produce any subset. The tier is high only when
// one of the four structural attributes was present at all.
func AnalyzeMetadata(doc *goquery.Document) MetaResult {
	md := extractMetadata(doc)

	var signals []Signal
	structural := false

	hay := strings.TrimSpace(md.Description + " " + md.Title + " " + md.OGDescription)
	if code := bodyMention(hay); code != "" {
		signals = append(signals, Signal{Source: SourceDescriptionHint, Value: code, Weight: weightDescriptionHint})
	}
	if md.HTMLLang != "" {
		structural = true
		signals = append(signals, Signal{Source: SourceHTMLLang, Value: md.HTMLLang, Weight: weightHTMLLang})
	}
	if md.ContentLanguage != "" {
		structural = true
		signals = append(signals, Signal{Source: SourceMetaContentLanguage, Value: md.ContentLanguage, Weight: weightContentLanguage})
	}
	if md.OGLocale != "" {
		structural = true
		signals = append(signals, Signal{Source: SourceOGLocale, Value: md.OGLocale, Weight: weightOGLocale})
	}
	if md.MetaLanguage != "" {
		structural = true
		signals = append(signals, Signal{Source: SourceMetaLanguage, Value: md.MetaLanguage, Weight: weightMetaLanguage})
	}
	for _, rp := range resourceTable {
		if rp.re.MatchString(md.Resources) {
			signals = append(signals, Signal{Source: SourceResourceAnalysis, Value: rp.code, Weight: weightResources})
		}
	}

	tier := TierLow
	if structural {
		tier = TierHigh
	}
	return MetaResult{
		Language: Aggregate(signals),
		Tier:     tier,
		Signals:  signals,
		Meta:     md,
	}
}

func extractMetadata(doc *goquery.Document) Metadata {
	md := Metadata{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}
	if v, ok := doc.Find(`meta[name='description']`).Attr("content"); ok {
		md.Description = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[property='og:title']`).Attr("content"); ok {
		md.OGTitle = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[property='og:description']`).Attr("content"); ok {
		md.OGDescription = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[property='og:site_name']`).Attr("content"); ok {
		md.OGSiteName = strings.TrimSpace(v)
	}
	if v, ok := doc.Find("html").First().Attr("lang"); ok {
		md.HTMLLang = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[http-equiv='content-language']`).Attr("content"); ok {
		md.ContentLanguage = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[property='og:locale']`).Attr("content"); ok {
		md.OGLocale = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[name='language']`).Attr("content"); ok {
		md.MetaLanguage = strings.TrimSpace(v)
	}

	var res strings.Builder
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			res.WriteString(strings.ToLower(src))
			res.WriteByte(' ')
		}
	})
	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			res.WriteString(strings.ToLower(href))
			res.WriteByte(' ')
		}
	})
	md.Resources = res.String()
	return md
}
