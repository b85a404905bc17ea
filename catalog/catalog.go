package catalog

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/andaru/mbwizard/mberr"
	"github.com/andaru/mbwizard/schema"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// PlanInfo holds the connection settings of one billing plan.
type PlanInfo = schema.PlanInfo

const (
	// DefaultProviderDatabase is where mobile-broadband-provider-info
	// installs its database.
	DefaultProviderDatabase = "/usr/share/mobile-broadband-provider-info/serviceproviders.xml"
	// DefaultCountryCodes is where iso-codes installs the ISO 3166 list.
	DefaultCountryCodes = "/usr/share/xml/iso-codes/iso_3166.xml"
)

// Catalog is the immutable lookup structure built from the provider
// database and the ISO 3166 country list. Its methods never modify it
// and may be called from multiple goroutines.
type Catalog struct {
	countries schema.CountryTable
	codes     schema.CodeTable
	// names is the reverse of codes
	names    map[string]string
	warnings []error
}

type options struct {
	providers  string
	codes      string
	translator schema.Translator
}

// Option configures Load and Parse
type Option func(*options)

// WithProviderDatabase sets the serviceproviders.xml path read by Load.
func WithProviderDatabase(path string) Option { return func(o *options) { o.providers = path } }

// WithCountryCodes sets the iso_3166.xml path read by Load.
func WithCountryCodes(path string) Option { return func(o *options) { o.codes = path } }

// WithTranslator sets the translator applied to country display names.
func WithTranslator(t schema.Translator) Option { return func(o *options) { o.translator = t } }

func newOptions(opts []Option) options {
	o := options{providers: DefaultProviderDatabase, codes: DefaultCountryCodes}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load reads and parses the provider database and then the country code
// list. Any read or parse failure of either file is returned and no
// catalog is built.
func Load(opts ...Option) (*Catalog, error) {
	o := newOptions(opts)

	data, err := readSource(o.providers)
	if err != nil {
		return nil, err
	}
	pp := schema.NewProviderParser()
	if err := schema.Parse(data, pp); err != nil {
		return nil, errors.Wrapf(err, "%s", o.providers)
	}

	if data, err = readSource(o.codes); err != nil {
		return nil, err
	}
	ip := schema.NewISOParser(o.translator)
	if err := schema.Parse(data, ip); err != nil {
		return nil, errors.Wrapf(err, "%s", o.codes)
	}

	c := build(pp, ip)
	glog.V(1).Infof("catalog: %d countries with %d providers from %s, %d country names from %s",
		c.NumCountries(), c.NumProviders(), o.providers, len(c.codes), o.codes)
	return c, nil
}

// Parse builds a catalog from the provider database document read from
// providers and the country code document read from codes. Path options
// are ignored.
func Parse(providers, codes io.Reader, opts ...Option) (*Catalog, error) {
	o := newOptions(opts)

	pp := schema.NewProviderParser()
	if err := schema.Decode(schema.NewDecoder(providers), pp); err != nil {
		return nil, errors.Wrap(err, "provider database")
	}
	ip := schema.NewISOParser(o.translator)
	if err := schema.Decode(schema.NewDecoder(codes), ip); err != nil {
		return nil, errors.Wrap(err, "country codes")
	}
	return build(pp, ip), nil
}

func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(mberr.UnreadableSource(path, mberr.WithMessage(err.Error())))
	}
	return data, nil
}

func build(pp *schema.ProviderParser, ip *schema.ISOParser) *Catalog {
	c := &Catalog{
		countries: pp.Countries(),
		codes:     ip.Codes(),
		names:     map[string]string{},
		warnings:  ip.Warnings(),
	}
	for name, code := range c.codes {
		code = strings.ToUpper(code)
		if cur, ok := c.names[code]; !ok || name < cur {
			c.names[code] = name
		}
	}
	return c
}

// Warnings returns the entries skipped while loading the country codes.
func (c *Catalog) Warnings() []error { return c.warnings }

// NumCountries returns the number of countries in the provider database.
func (c *Catalog) NumCountries() int { return len(c.countries) }

// NumProviders returns the number of providers over all countries.
func (c *Catalog) NumProviders() (n int) {
	for _, providers := range c.countries {
		n += len(providers)
	}
	return n
}

// Countries returns every known country display name, sorted ascending
// byte-wise.
func (c *Catalog) Countries() []string {
	names := lo.Keys(c.codes)
	sort.Strings(names)
	return names
}

// Providers returns the providers of the named country in no particular
// order, or nil if the country is unknown or has no providers.
func (c *Catalog) Providers(country string) []string {
	providers, ok := c.providers(country)
	if !ok || len(providers) == 0 {
		return nil
	}
	return lo.Keys(providers)
}

// Plans returns the plan names of a provider in no particular order, or
// nil if any name does not resolve.
func (c *Catalog) Plans(country, provider string) []string {
	plans, ok := c.plans(country, provider)
	if !ok || len(plans) == 0 {
		return nil
	}
	return lo.Keys(plans)
}

// PlanInfo returns the connection settings of a plan. The second result
// is false if any name does not resolve.
func (c *Catalog) PlanInfo(country, provider, plan string) (PlanInfo, bool) {
	plans, ok := c.plans(country, provider)
	if !ok {
		return PlanInfo{}, false
	}
	info, ok := plans[plan]
	if !ok || info == nil {
		return PlanInfo{}, false
	}
	return *info, true
}

// Code returns the ISO 3166 alpha-2 code of a country display name.
func (c *Catalog) Code(country string) (string, bool) {
	code, ok := c.codes[country]
	return code, ok
}

// CountryFromCode returns the display name of the country with the
// given alpha-2 code, compared case-insensitively. When several names
// share a code the smallest is returned.
func (c *Catalog) CountryFromCode(code string) (string, bool) {
	name, ok := c.names[strings.ToUpper(code)]
	return name, ok
}

func (c *Catalog) providers(country string) (schema.ProviderTable, bool) {
	code, ok := c.codes[country]
	if !ok {
		return nil, false
	}
	providers, ok := c.countries[strings.ToUpper(code)]
	return providers, ok
}

func (c *Catalog) plans(country, provider string) (schema.PlanTable, bool) {
	providers, ok := c.providers(country)
	if !ok {
		return nil, false
	}
	plans, ok := providers[provider]
	return plans, ok
}
