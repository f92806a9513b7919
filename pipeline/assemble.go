package pipeline

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/wprecover"
)

// Assembler turns extractions into post records.
type Assembler struct {
	Vocabulary wprecover.Vocabulary
}

// Assemble builds the record for one extraction. The identity is derived
// from the body; the guid is the site URL joined with the page slug or,
// for posts, the identity.
//
// Returns EUNMAPPED if a category is not part of the vocabulary.
func (a *Assembler) Assemble(site *wprecover.Site, ext *wprecover.Extraction) (*wprecover.PostRecord, error) {
	id := wprecover.ContentIdentity(ext.Body)

	rec := &wprecover.PostRecord{
		ID:         id,
		Type:       ext.Type,
		Title:      ext.Title,
		Date:       ext.Date,
		Body:       ext.Body,
		Slug:       ext.Slug,
		SourcePath: ext.SourcePath,
	}

	if ext.Type == wprecover.PostTypePage {
		rec.GUID = site.URL + "/" + ext.Slug
	} else {
		rec.GUID = site.URL + "/" + strconv.Itoa(id)
	}

	for _, name := range ext.Categories {
		slug, err := a.Vocabulary.Slug(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ext.SourcePath, err)
		}
		rec.Categories = append(rec.Categories, wprecover.Term{Name: name, Slug: slug})
	}
	for _, name := range ext.Tags {
		rec.Tags = append(rec.Tags, wprecover.Term{Name: name, Slug: name})
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
