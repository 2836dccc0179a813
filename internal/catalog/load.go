package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

// File is the YAML layout of a catalog file.
//
//	appliances:
//	  - key: air_conditioners
//	    label: Кондиционеры
//	    product_url: https://...
//	regions:
//	  - key: tashkent
//	    label: Ташкент
//	    staff: [888936051]
//	translations:
//	  uz:
//	    Кондиционеры: Konditsionerlar
type File struct {
	Appliances   []Appliance                  `yaml:"appliances"`
	Regions      []Region                     `yaml:"regions"`
	Translations map[string]map[string]string `yaml:"translations"`
}

// Load reads a catalog from a YAML file. Sections missing from the file
// keep the built-in defaults, so a file may only override staff routing.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	appliances := f.Appliances
	if len(appliances) == 0 {
		appliances = defaultAppliances
	}
	regions := f.Regions
	if len(regions) == 0 {
		regions = defaultRegions
	}

	translations := defaultTranslations
	if len(f.Translations) > 0 {
		translations = make(map[domain.Language]map[string]string, len(f.Translations))
		for lang, table := range f.Translations {
			translations[domain.Language(lang)] = table
		}
	}

	return New(appliances, regions, translations)
}
