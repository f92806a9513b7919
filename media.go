package wprecover

// UploadsMarker identifies references into the WordPress uploads tree.
const UploadsMarker = "wp-content/uploads"

// MediaMatch is an archived file located for a media reference.
type MediaMatch struct {
	// LocalPath is the archived file to copy.
	LocalPath string

	// Resized is true when the file was found by stripping a
	// -WIDTHxHEIGHT suffix rather than by exact name.
	Resized bool
}

// MediaArchive looks up archived copies of uploaded media.
type MediaArchive interface {
	// LocateMedia finds the archived file for an uploads-relative path
	// within a site. Returns ENOTFOUND if no file matches.
	LocateMedia(site *Site, relPath string) (*MediaMatch, error)
}

// MediaStore receives copies of archived media files.
type MediaStore interface {
	// StoreMedia copies the file at src to destRel under the media output root.
	StoreMedia(src, destRel string) error
}
