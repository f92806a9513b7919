package wprecover

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

// DateLayout is the fixed timestamp layout used for every date in an export.
const DateLayout = "2006-01-02 15:04:05"

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// PostType classifies a record as a blog post or a static page.
type PostType string

// PostType constants.
const (
	PostTypePost PostType = "post"
	PostTypePage PostType = "page"
)

// IdentityBits is the number of digest bits used for content identities.
const IdentityBits = 24

// MediaIDOffset seeds the attachment identity sequence one above the
// largest possible content identity, so the two ranges never overlap.
const MediaIDOffset = 1 << IdentityBits

// ContentDigest returns the MD5 digest of a sanitized body. Record identity
// and deduplication both derive from it.
func ContentDigest(body string) [md5.Size]byte {
	return md5.Sum([]byte(body))
}

// ContentIdentity derives a record identity from its sanitized body markup:
// the first 24 bits of the body's MD5 digest read as an integer.
func ContentIdentity(body string) int {
	sum := ContentDigest(body)
	// Six hex digits are exactly IdentityBits bits.
	id, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:IdentityBits/4], 16, 64)
	return int(id)
}

// Term is a category or tag attached to a record.
type Term struct {
	Name string
	Slug string
}

// PostRecord is the canonical output unit of the pipeline.
type PostRecord struct {
	ID         int
	Type       PostType
	Title      string
	Date       string
	Body       string
	Slug       string
	GUID       string
	Categories []Term
	Tags       []Term
	Media      []*MediaAttachment

	// SourcePath is the document the record was extracted from.
	SourcePath string
}

// Validate returns an error if the record contains invalid fields.
func (r *PostRecord) Validate() error {
	if r.Type != PostTypePost && r.Type != PostTypePage {
		return Errorf(EINVALID, "record type %q invalid", r.Type)
	}
	if r.GUID == "" {
		return Errorf(EINVALID, "record guid required")
	}
	if r.Date == "" {
		return Errorf(EINVALID, "record date required")
	}
	return nil
}

// MediaAttachment is one archived media asset referenced by a PostRecord.
type MediaAttachment struct {
	ID       int
	ParentID int
	URL      string
	Filename string
	Title    string
	Date     string
}

// IDSequence hands out attachment identities from a monotonically
// increasing counter. It is not safe for concurrent use.
type IDSequence struct {
	last int
}

// NewIDSequence returns a sequence whose first identity is offset+1.
func NewIDSequence(offset int) *IDSequence {
	return &IDSequence{last: offset}
}

// Next returns the next identity.
func (s *IDSequence) Next() int {
	s.last++
	return s.last
}
