package wprecover

// MediaRef is a media element found in a content block.
type MediaRef struct {
	// Src is the element's src attribute.
	Src string

	// CanonicalSrc is the full-resolution reference: the wrapping anchor's
	// target when it points into the uploads tree, otherwise Src.
	CanonicalSrc string
}

// Extracted fields that can fall back to weaker rules.
const (
	FieldType  = "type"
	FieldTitle = "title"
	FieldDate  = "date"
)

// Fallback records that a field was resolved by a rule weaker than the
// strongest one of its cascade.
type Fallback struct {
	Field string
	Rule  string

	// Degraded marks a value carrying no information about the source,
	// such as the current time used as a publish date.
	Degraded bool
}

// Extraction holds the fields extracted from one content block, before
// identity assignment and taxonomy mapping.
type Extraction struct {
	Type       PostType
	Title      string
	Date       string
	Body       string
	Categories []string
	Tags       []string
	Media      []MediaRef

	// Slug is the URL-decoded last directory segment of the document path.
	Slug string

	// SourcePath is the path of the document the block came from.
	SourcePath string

	// Fallbacks lists the fields not resolved by their strongest rule.
	Fallbacks []Fallback
}

// ExtractResult holds every content block extracted from one document,
// plus the blocks or documents that could not be extracted.
type ExtractResult struct {
	Extractions []*Extraction
	Skips       []Skip
}

// Extractor turns an archived document into per-block extractions.
type Extractor interface {
	// Extract strips boilerplate from the document, locates its content
	// blocks and resolves title, date, taxonomy and media references.
	// A document without recognizable blocks yields a skip, not an error.
	Extract(doc *Document) (*ExtractResult, error)
}
