package wprecover

// Vocabulary maps category names to output slugs. It is a closed, site-specific
// table: its entries are deliberate translations, not derived from the names.
type Vocabulary map[string]string

// DefaultVocabulary is the category table of the recovered site.
var DefaultVocabulary = Vocabulary{
	"お知らせ":    "announcements",
	"資料庫":     "materials",
	"トピックス":   "topics",
	"未分類":     "uncategorized",
	"活動実績":    "achievements",
	"中国支部総会":  "annual-meetings",
	"行事予定・報告": "events",
}

// Slug returns the slug for a category name.
// Returns EUNMAPPED if the name is not part of the vocabulary.
func (v Vocabulary) Slug(name string) (string, error) {
	slug, ok := v[name]
	if !ok {
		return "", Errorf(EUNMAPPED, "category %q has no slug in the vocabulary", name)
	}
	return slug, nil
}

// Merge returns a new vocabulary with other's entries layered over v.
func (v Vocabulary) Merge(other Vocabulary) Vocabulary {
	merged := make(Vocabulary, len(v)+len(other))
	for name, slug := range v {
		merged[name] = slug
	}
	for name, slug := range other {
		merged[name] = slug
	}
	return merged
}
