// Package chardet decodes archived documents whose character encoding is
// unknown, detecting it with gogs/chardet.
package chardet

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/wprecover"
	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
)

// Ensure Decoder implements wprecover.Decoder at compile time.
var _ wprecover.Decoder = (*Decoder)(nil)

// DefaultCharset is assumed when detection yields nothing.
const DefaultCharset = "utf-8"

// Detector labels that are not WHATWG encoding labels.
var labelAliases = map[string]string{
	"gb-18030": "gb18030",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder detects the encoding of raw document bytes and decodes them.
type Decoder struct {
	detector *chardet.Detector
}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{detector: chardet.NewHtmlDetector()}
}

// Decode returns raw decoded with its detected encoding.
// Returns EINVALID if the bytes are not valid in that encoding.
func (d *Decoder) Decode(raw []byte) (string, error) {
	text, _, err := d.DecodeCharset(raw)
	return text, err
}

// DecodeCharset is like Decode and also returns the detected encoding
// label, which is set even when decoding fails.
func (d *Decoder) DecodeCharset(raw []byte) (text, label string, err error) {
	label = d.Detect(raw)

	enc, name := charset.Lookup(label)
	if enc == nil || name == "replacement" {
		return "", label, wprecover.Errorf(wprecover.EINVALID, "could not decode: unsupported encoding %q", label)
	}

	if name == "utf-8" {
		raw = bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(raw) {
			return "", label, wprecover.Errorf(wprecover.EINVALID, "could not decode: invalid %s", name)
		}
		return string(raw), label, nil
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", label, wprecover.Errorf(wprecover.EINVALID, "could not decode: %v", err)
	}
	// Decoders substitute U+FFFD for invalid input instead of failing.
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(raw, utf8.RuneError) {
		return "", label, wprecover.Errorf(wprecover.EINVALID, "could not decode: invalid %s", name)
	}
	return string(out), label, nil
}

// Detect returns the encoding label of raw, or DefaultCharset when the
// detector has no answer. Valid UTF-8 is reported as such without running
// the detector, which otherwise favors single-byte encodings for mostly
// ASCII text. Input with escape bytes may be ISO-2022 and is always detected.
func (d *Decoder) Detect(raw []byte) string {
	if bytes.HasPrefix(raw, utf8BOM) || (utf8.Valid(raw) && bytes.IndexByte(raw, 0x1b) < 0) {
		return DefaultCharset
	}
	result, err := d.detector.DetectBest(raw)
	if err != nil || result == nil || result.Charset == "" {
		return DefaultCharset
	}
	label := strings.ToLower(result.Charset)
	if alias, ok := labelAliases[label]; ok {
		return alias
	}
	return label
}
