package catalog

import (
	"errors"
	"fmt"

	"github.com/humoyunmirzo-code/tgbot/internal/domain"
)

// ErrInvalidCatalog is returned when catalog data fails validation
var ErrInvalidCatalog = errors.New("invalid catalog")

// Appliance is a product category the service flow accepts
type Appliance struct {
	Key        string `yaml:"key"`
	Label      string `yaml:"label"`
	ProductURL string `yaml:"product_url"`
}

// Region is a service region with the staff chats that receive its tickets
type Region struct {
	Key             string  `yaml:"key"`
	Label           string  `yaml:"label"`
	StaffRecipients []int64 `yaml:"staff"`
}

// Catalog is an immutable bilingual registry of appliances, regions and labels.
// Canonical labels are Russian; other languages go through the translation table.
type Catalog struct {
	appliances   []Appliance
	regions      []Region
	translations map[domain.Language]map[string]string

	applianceByKey map[string]int
	regionByKey    map[string]int
}

// New validates the data and builds a catalog. Inputs are copied.
func New(appliances []Appliance, regions []Region, translations map[domain.Language]map[string]string) (*Catalog, error) {
	c := &Catalog{
		appliances:     make([]Appliance, len(appliances)),
		regions:        make([]Region, 0, len(regions)),
		translations:   make(map[domain.Language]map[string]string, len(translations)),
		applianceByKey: make(map[string]int, len(appliances)),
		regionByKey:    make(map[string]int, len(regions)),
	}
	copy(c.appliances, appliances)

	labels := make(map[string]bool)
	for i, a := range c.appliances {
		if a.Key == "" || a.Label == "" {
			return nil, fmt.Errorf("%w: appliance #%d has empty key or label", ErrInvalidCatalog, i+1)
		}
		if _, dup := c.applianceByKey[a.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate appliance key %q", ErrInvalidCatalog, a.Key)
		}
		if labels[a.Label] {
			return nil, fmt.Errorf("%w: duplicate appliance label %q", ErrInvalidCatalog, a.Label)
		}
		labels[a.Label] = true
		c.applianceByKey[a.Key] = i
	}

	labels = make(map[string]bool)
	for i, r := range regions {
		if r.Key == "" || r.Label == "" {
			return nil, fmt.Errorf("%w: region #%d has empty key or label", ErrInvalidCatalog, i+1)
		}
		if _, dup := c.regionByKey[r.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate region key %q", ErrInvalidCatalog, r.Key)
		}
		if labels[r.Label] {
			return nil, fmt.Errorf("%w: duplicate region label %q", ErrInvalidCatalog, r.Label)
		}
		labels[r.Label] = true
		r.StaffRecipients = append([]int64(nil), r.StaffRecipients...)
		c.regionByKey[r.Key] = i
		c.regions = append(c.regions, r)
	}

	for lang, table := range translations {
		if !lang.Valid() {
			return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidCatalog, lang)
		}
		cp := make(map[string]string, len(table))
		for k, v := range table {
			cp[k] = v
		}
		c.translations[lang] = cp
	}

	if err := c.validateLabels(); err != nil {
		return nil, err
	}

	return c, nil
}

// validateLabels checks that every text a user can send resolves to a single key in every language
func (c *Catalog) validateLabels() error {
	for _, lang := range domain.Languages() {
		seen := make(map[string]string)
		for _, a := range c.appliances {
			if label, ok := claimLabels(seen, a.Key, a.Label, c.Translate(a.Label, lang)); !ok {
				return fmt.Errorf("%w: appliance label %q is ambiguous for %s", ErrInvalidCatalog, label, lang)
			}
		}

		seen = make(map[string]string)
		for _, r := range c.regions {
			if label, ok := claimLabels(seen, r.Key, r.Label, c.Translate(r.Label, lang)); !ok {
				return fmt.Errorf("%w: region label %q is ambiguous for %s", ErrInvalidCatalog, label, lang)
			}
		}
	}
	return nil
}

// claimLabels records labels as owned by key. It returns the first label already owned by another key.
func claimLabels(seen map[string]string, key string, labels ...string) (string, bool) {
	for _, label := range labels {
		if owner, taken := seen[label]; taken && owner != key {
			return label, false
		}
		seen[label] = key
	}
	return "", true
}

// Appliances returns appliances in display order
func (c *Catalog) Appliances() []Appliance {
	out := make([]Appliance, len(c.appliances))
	copy(out, c.appliances)
	return out
}

// Regions returns regions in display order
func (c *Catalog) Regions() []Region {
	out := make([]Region, len(c.regions))
	for i, r := range c.regions {
		r.StaffRecipients = append([]int64(nil), r.StaffRecipients...)
		out[i] = r
	}
	return out
}

// Appliance looks up an appliance by canonical key
func (c *Catalog) Appliance(key string) (Appliance, bool) {
	i, ok := c.applianceByKey[key]
	if !ok {
		return Appliance{}, false
	}
	return c.appliances[i], true
}

// Region looks up a region by canonical key
func (c *Catalog) Region(key string) (Region, bool) {
	i, ok := c.regionByKey[key]
	if !ok {
		return Region{}, false
	}
	r := c.regions[i]
	r.StaffRecipients = append([]int64(nil), r.StaffRecipients...)
	return r, true
}

// Translate returns the label for lang, or the canonical label when no translation exists
func (c *Catalog) Translate(label string, lang domain.Language) string {
	if translated, ok := c.translations[lang][label]; ok && translated != "" {
		return translated
	}
	return label
}

// ResolveAppliance maps a button text to an appliance key.
// Input must equal the canonical label or its translation for lang exactly.
func (c *Catalog) ResolveAppliance(input string, lang domain.Language) (string, bool) {
	for _, a := range c.appliances {
		if input == a.Label || input == c.Translate(a.Label, lang) {
			return a.Key, true
		}
	}
	return "", false
}

// ResolveRegion maps a button text to a region key, same matching rule as ResolveAppliance
func (c *Catalog) ResolveRegion(input string, lang domain.Language) (string, bool) {
	for _, r := range c.regions {
		if input == r.Label || input == c.Translate(r.Label, lang) {
			return r.Key, true
		}
	}
	return "", false
}

// RecipientsFor returns staff chat ids for a region. Unknown regions yield an empty list.
func (c *Catalog) RecipientsFor(regionKey string) []int64 {
	i, ok := c.regionByKey[regionKey]
	if !ok {
		return []int64{}
	}
	return append([]int64{}, c.regions[i].StaffRecipients...)
}

// ApplianceLabel returns the display label of an appliance key, or the key itself if unknown
func (c *Catalog) ApplianceLabel(key string, lang domain.Language) string {
	a, ok := c.Appliance(key)
	if !ok {
		return key
	}
	return c.Translate(a.Label, lang)
}

// RegionLabel returns the display label of a region key, or the key itself if unknown
func (c *Catalog) RegionLabel(key string, lang domain.Language) string {
	i, ok := c.regionByKey[key]
	if !ok {
		return key
	}
	return c.Translate(c.regions[i].Label, lang)
}
