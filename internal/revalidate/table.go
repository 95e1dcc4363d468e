package revalidate

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/driftwood-studio/marquee/internal/errors"
)

// LoadTable reads a document-type dispatch table from a YAML file and merges
// it over the built-in defaults. The file maps document types to tag lists:
//
//	post: [posts, blog]
//	caseStudy: [pages, work]
//
// Entries replace the default for that type; types not mentioned keep their
// defaults. The baseline tag never needs to be listed, TagsFor adds it.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid,
			"read tag table").WithContext("path", path).WithContext("cause", err.Error())
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid,
			"parse tag table").WithContext("path", path).WithContext("cause", err.Error())
	}

	table := DefaultTable()
	for docType, tags := range raw {
		mapped := make([]CacheTag, 0, len(tags)+1)
		mapped = append(mapped, TagBaseline)
		for _, t := range tags {
			if t != "" {
				mapped = append(mapped, CacheTag(t))
			}
		}
		table[docType] = mapped
	}

	return table, nil
}
