package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/wprecover"
)

// DateRule resolves a publish date from a page or reports no match.
// Resolved dates are always formatted with wprecover.DateLayout.
type DateRule struct {
	Name    string
	Resolve func(p *Page) (string, bool)
}

// Date rule names.
const (
	DateRulePublishedTime = "published_time meta"
	DateRuleEntryDate     = "entry-date time"
	DateRuleFooter        = "footer date"
	DateRuleWayback       = "wayback timestamp"
	DateRulePathDay       = "path year/month/day"
	DateRulePathMonth     = "path year/month"
	DateRulePathYear      = "path year"
	DateRuleNow           = "current time"
)

var (
	entryDateRe = regexp.MustCompile(`entry-date`)

	japaneseDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`),
		regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`),
		regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
	}

	// Path patterns match whole segments; a relative path's first segment
	// has no leading separator.
	waybackTimestampRe = regexp.MustCompile(`(?:^|/)(\d{14})/`)
	pathDayRe          = regexp.MustCompile(`(?:^|/)([12]\d{3})/(\d{1,2})/(\d{1,2})/`)
	pathMonthRe        = regexp.MustCompile(`(?:^|/)([12]\d{3})/(\d{1,2})/`)
	pathYearRe         = regexp.MustCompile(`(?:^|/)([12]\d{3})/`)
)

// DateRules returns the date cascade, strongest signal first. The last rule
// falls back to now, which carries no historical meaning.
func DateRules(now func() time.Time) []DateRule {
	return []DateRule{
		{Name: DateRulePublishedTime, Resolve: publishedTime},
		{Name: DateRuleEntryDate, Resolve: entryDate},
		{Name: DateRuleFooter, Resolve: footerDate},
		{Name: DateRuleWayback, Resolve: func(p *Page) (string, bool) { return ParseWaybackTimestamp(p.Path) }},
		{Name: DateRulePathDay, Resolve: func(p *Page) (string, bool) { return matchPathDate(pathDayRe, p.Path) }},
		{Name: DateRulePathMonth, Resolve: func(p *Page) (string, bool) { return matchPathDate(pathMonthRe, p.Path) }},
		{Name: DateRulePathYear, Resolve: func(p *Page) (string, bool) { return matchPathDate(pathYearRe, p.Path) }},
		{Name: DateRuleNow, Resolve: func(*Page) (string, bool) { return wprecover.FormatDate(now()), true }},
	}
}

// ResolveDate applies rules in order and returns the first date found
// together with the name of the rule that produced it.
func ResolveDate(p *Page, rules []DateRule) (date, rule string) {
	for _, r := range rules {
		if d, ok := r.Resolve(p); ok {
			return d, r.Name
		}
	}
	return "", ""
}

func publishedTime(p *Page) (string, bool) {
	content, ok := p.Doc.Find(`meta[property="article:published_time"]`).First().Attr("content")
	if !ok {
		return "", false
	}
	return parseAny(content)
}

func entryDate(p *Page) (string, bool) {
	el := findByClass(p.Doc.Selection, "time", entryDateRe).First()
	datetime, ok := el.Attr("datetime")
	if !ok {
		return "", false
	}
	return parseAny(datetime)
}

func footerDate(p *Page) (string, bool) {
	footer := p.Doc.Find("footer").First()
	if footer.Length() == 0 {
		return "", false
	}
	return ParseJapaneseDate(footer.Text())
}

func parseAny(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", false
	}
	return wprecover.FormatDate(t), true
}

// ParseJapaneseDate finds the first date written as YYYY年M月D日, YYYY/M/D or
// YYYY-M-D in text, trying the patterns in that order. A pattern whose first
// match is not a calendar date falls through to the next pattern.
func ParseJapaneseDate(text string) (string, bool) {
	for _, re := range japaneseDatePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, ok := calendarDate(m[1], m[2], m[3]); ok {
			return wprecover.FormatDate(t), true
		}
	}
	return "", false
}

// ParseWaybackTimestamp reads a 14-digit YYYYMMDDhhmmss capture timestamp
// embedded as a path segment.
func ParseWaybackTimestamp(docPath string) (string, bool) {
	m := waybackTimestampRe.FindStringSubmatch(docPath)
	if m == nil {
		return "", false
	}
	t, err := time.Parse("20060102150405", m[1])
	if err != nil {
		return "", false
	}
	return wprecover.FormatDate(t), true
}

// matchPathDate reads the first calendar segment matched by re. Missing
// month or day components default to 1.
func matchPathDate(re *regexp.Regexp, docPath string) (string, bool) {
	m := re.FindStringSubmatch(docPath)
	if m == nil {
		return "", false
	}
	parts := append(m[1:], "1", "1")
	t, ok := calendarDate(parts[0], parts[1], parts[2])
	if !ok {
		return "", false
	}
	return wprecover.FormatDate(t), true
}

func calendarDate(year, month, day string) (time.Time, bool) {
	t, err := time.Parse("2006-1-2", year+"-"+month+"-"+day)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
