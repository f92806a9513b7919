package goquery

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wprecover"
)

// Ensure Extractor implements wprecover.Extractor at compile time.
var _ wprecover.Extractor = (*Extractor)(nil)

// Extractor extracts WordPress content blocks from archived documents.
type Extractor struct {
	titleRules []TitleRule
	dateRules  []DateRule
}

// Option configures an Extractor.
type Option func(*extractorConfig)

type extractorConfig struct {
	now func() time.Time
}

// WithClock sets the clock used by the last-resort date rule.
// Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *extractorConfig) {
		c.now = now
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	cfg := extractorConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Extractor{
		titleRules: TitleRules,
		dateRules:  DateRules(cfg.now),
	}
}

// Extract parses the document, strips noise and extracts every article
// that has an entry-content container.
func (e *Extractor) Extract(doc *wprecover.Document) (*wprecover.ExtractResult, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return nil, wprecover.Errorf(wprecover.EINVALID, "failed to parse HTML: %v", err)
	}
	StripNoise(d)

	result := &wprecover.ExtractResult{}
	articles := Articles(d)
	if articles.Length() == 0 {
		result.Skips = append(result.Skips, wprecover.Skip{Path: doc.Path, Reason: wprecover.SkipNoArticle})
		return result, nil
	}

	var extractErr error
	articles.EachWithBreak(func(i int, article *goquery.Selection) bool {
		ext, err := e.extractArticle(d, article, doc.Path)
		if err != nil {
			extractErr = err
			return false
		}
		if ext == nil {
			result.Skips = append(result.Skips, wprecover.Skip{
				Path:   doc.Path,
				Reason: wprecover.SkipNoContent,
				Detail: fmt.Sprintf("article %d", i+1),
			})
			return true
		}
		result.Extractions = append(result.Extractions, ext)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}
	return result, nil
}

// extractArticle returns nil if the article has no content container.
func (e *Extractor) extractArticle(doc *goquery.Document, article *goquery.Selection, docPath string) (*wprecover.Extraction, error) {
	postType, byClass := Classify(article, docPath)

	content := ContentContainer(article)
	if content == nil {
		return nil, nil
	}
	SanitizeContent(content)

	body, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("render content: %w", err)
	}

	p := &Page{
		Doc:     doc,
		Article: article,
		Content: content,
		Path:    docPath,
		Type:    postType,
		Slug:    DirSlug(docPath),
	}
	title, titleRule := ResolveTitle(p, e.titleRules)
	date, dateRule := ResolveDate(p, e.dateRules)
	categories, tags := Taxonomy(article)

	var fallbacks []wprecover.Fallback
	if !byClass {
		fallbacks = append(fallbacks, wprecover.Fallback{Field: wprecover.FieldType, Rule: "path"})
	}
	if titleRule != e.titleRules[0].Name {
		fallbacks = append(fallbacks, wprecover.Fallback{Field: wprecover.FieldTitle, Rule: titleRule})
	}
	if dateRule != e.dateRules[0].Name {
		fallbacks = append(fallbacks, wprecover.Fallback{
			Field:    wprecover.FieldDate,
			Rule:     dateRule,
			Degraded: dateRule == DateRuleNow,
		})
	}

	return &wprecover.Extraction{
		Type:       postType,
		Title:      title,
		Date:       date,
		Body:       body,
		Categories: categories,
		Tags:       tags,
		Media:      MediaRefs(content),
		Slug:       p.Slug,
		SourcePath: docPath,
		Fallbacks:  fallbacks,
	}, nil
}
