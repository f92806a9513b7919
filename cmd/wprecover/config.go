package main

import (
	"os"
	"strings"

	"github.com/fwojciec/wprecover"
	"gopkg.in/yaml.v3"
)

// LoadVocabulary reads a YAML mapping of category names to slugs.
//
//	お知らせ: announcements
//	寄稿: contributions
func LoadVocabulary(path string) (wprecover.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wprecover.Errorf(wprecover.EINVALID, "read categories file: %v", err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, wprecover.Errorf(wprecover.EINVALID, "parse categories file %s: %v", path, err)
	}

	vocabulary := make(wprecover.Vocabulary, len(entries))
	for name, slug := range entries {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			return nil, wprecover.Errorf(wprecover.EINVALID, "category %q has an empty slug", name)
		}
		vocabulary[strings.TrimSpace(name)] = slug
	}
	return vocabulary, nil
}
