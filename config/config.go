// Package config holds the settings of the mbwizard command.
package config

import (
	"os"

	"github.com/andaru/mbwizard/catalog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no configuration file is named.
const DefaultPath = "/etc/mbwizard.yaml"

// Config is the mbwizard configuration
type Config struct {
	// ProviderDatabase is the serviceproviders.xml path
	ProviderDatabase string `yaml:"provider_database"`
	// CountryCodes is the iso_3166.xml path
	CountryCodes string `yaml:"country_codes"`
	// Modem is the oFono modem object path, e.g. /hfp/org/bluez/hci0/dev_00_11_22_33_44_55
	Modem string `yaml:"modem"`
	// Locale overrides LC_ALL/LC_MESSAGES/LANG, e.g. de_DE.UTF-8
	Locale string `yaml:"locale"`
	// ContextType is the oFono context type to configure
	ContextType string `yaml:"context_type"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		ProviderDatabase: catalog.DefaultProviderDatabase,
		CountryCodes:     catalog.DefaultCountryCodes,
		ContextType:      "internet",
	}
}

// Update overlays the settings found in the YAML file at path onto c.
// A missing file leaves c unchanged; an unreadable or invalid one is an
// error.
func (c *Config) Update(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "config")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "config %s", path)
	}
	return nil
}

// CatalogOptions returns the catalog load options for c.
func (c *Config) CatalogOptions() []catalog.Option {
	return []catalog.Option{
		catalog.WithProviderDatabase(c.ProviderDatabase),
		catalog.WithCountryCodes(c.CountryCodes),
	}
}
