package wprecover

// Document is one archived HTML file from the mirror.
type Document struct {
	// Path is the slash-separated file path, including the archive root.
	// It may encode a Wayback capture timestamp and calendar segments.
	Path string

	// HTML is the decoded document text.
	HTML string
}

// Decoder turns raw document bytes into text.
type Decoder interface {
	// Decode detects the character encoding of raw and returns the decoded text.
	// Returns EINVALID if the bytes cannot be decoded.
	Decode(raw []byte) (string, error)
}

// Site is one logical WordPress site inside the archive mirror.
type Site struct {
	// Subdir is the site's directory relative to the archive root.
	// The root site has an empty Subdir.
	Subdir string

	// URL is the site's public base URL, without a trailing slash.
	URL string
}

// Mirror provides access to the documents of an archive mirror.
type Mirror interface {
	// Sites returns every logical site in the mirror, root site first.
	Sites() ([]*Site, error)

	// Documents returns the ordered document paths that belong to a site.
	Documents(site *Site) ([]string, error)

	// ReadDocument returns the raw bytes of a document.
	ReadDocument(path string) ([]byte, error)
}
