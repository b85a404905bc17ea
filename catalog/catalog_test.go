package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andaru/mbwizard/mberr"
	"github.com/andaru/mbwizard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	opts = append([]Option{
		WithProviderDatabase(filepath.Join("testdata", "serviceproviders.xml")),
		WithCountryCodes(filepath.Join("testdata", "iso_3166.xml")),
	}, opts...)
	c, err := Load(opts...)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestLoad(t *testing.T) {
	a := assert.New(t)
	c := loadFixture(t)

	a.Equal([]string{"India", "Taiwan", "United Kingdom", "United States", "Zambia"}, c.Countries())
	a.Equal(3, c.NumCountries())
	a.Equal(5, c.NumProviders())
	if a.Len(c.Warnings(), 1) {
		a.True(mberr.IsWarning(c.Warnings()[0]))
	}

	// round trip from country name to connection settings
	a.ElementsMatch([]string{"O2", "Vodafone"}, c.Providers("United Kingdom"))
	a.ElementsMatch([]string{"Contract", "Pay and Go (Prepaid)", "Default"}, c.Plans("United Kingdom", "O2"))
	info, ok := c.PlanInfo("United Kingdom", "O2", "Pay and Go (Prepaid)")
	a.True(ok)
	a.Equal(PlanInfo{APN: "payandgo.o2.co.uk", Username: "payandgo", Password: "password"}, info)

	// CDMA providers are listed but have no plans
	a.ElementsMatch([]string{"Verizon", "AT&T"}, c.Providers("United States"))
	a.Empty(c.Plans("United States", "Verizon"))
	_, ok = c.PlanInfo("United States", "Verizon", "Default")
	a.False(ok)

	// known country without any provider
	a.Empty(c.Providers("Taiwan"))
	a.Empty(c.Providers("Zambia"))
}

func TestQueryMisses(t *testing.T) {
	c := loadFixture(t)
	for _, tc := range []struct {
		name                    string
		country, provider, plan string
	}{
		{name: "unknown country", country: "Atlantis", provider: "O2", plan: "Contract"},
		{name: "code instead of name", country: "GB", provider: "O2", plan: "Contract"},
		{name: "unknown provider", country: "United Kingdom", provider: "Three", plan: "Contract"},
		{name: "unknown plan", country: "United Kingdom", provider: "O2", plan: "Unlimited"},
		{name: "plans of planless provider", country: "United States", provider: "Verizon", plan: "Default"},
		{name: "empty names"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			a.NotPanics(func() {
				info, ok := c.PlanInfo(tc.country, tc.provider, tc.plan)
				a.False(ok)
				a.Equal(PlanInfo{}, info)
			})
			if tc.provider != "O2" || tc.country != "United Kingdom" {
				a.Empty(c.Plans(tc.country, tc.provider))
			}
		})
	}
	assert.Nil(t, c.Providers("Atlantis"))
}

func TestCountriesSorted(t *testing.T) {
	c, err := Parse(
		strings.NewReader(`<serviceproviders format="2.0"/>`),
		strings.NewReader(`<iso_3166_entries>
<iso_3166_entry alpha_2_code="ZM" name="Zambia"/>
<iso_3166_entry alpha_2_code="AL" name="Albania"/>
<iso_3166_entry alpha_2_code="IN" name="India"/>
<iso_3166_entry alpha_2_code="AX" name="Åland Islands"/>
<iso_3166_entry alpha_2_code="BA" name="Bosnia and Herzegovina"/>
</iso_3166_entries>`))
	require.NoError(t, err)
	// byte-wise comparison sorts non-ASCII names last
	assert.Equal(t, []string{"Albania", "Bosnia and Herzegovina", "India", "Zambia", "Åland Islands"}, c.Countries())
}

func TestEmptyCatalog(t *testing.T) {
	a := assert.New(t)
	c, err := Parse(strings.NewReader(`<serviceproviders/>`), strings.NewReader(`<iso_3166_entries/>`))
	require.NoError(t, err)
	a.NotNil(c.Countries())
	a.Empty(c.Countries())
	a.Nil(c.Providers("United Kingdom"))
	_, ok := c.CountryFromCode("GB")
	a.False(ok)
}

func TestCountryFromCode(t *testing.T) {
	c := loadFixture(t)
	for _, tc := range []struct {
		code   string
		want   string
		wantOK bool
	}{
		{code: "GB", want: "United Kingdom", wantOK: true},
		{code: "gb", want: "United Kingdom", wantOK: true},
		{code: "TW", want: "Taiwan", wantOK: true},
		{code: "XX"},
		{code: ""},
	} {
		t.Run(tc.code, func(t *testing.T) {
			got, ok := c.CountryFromCode(tc.code)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	code, ok := c.Code("United Kingdom")
	assert.True(t, ok)
	assert.Equal(t, "GB", code)
}

func TestTranslator(t *testing.T) {
	c := loadFixture(t, WithTranslator(schema.TranslatorFunc(func(code, name string) string {
		if code == "GB" {
			return "Vereinigtes Königreich"
		}
		return name
	})))
	a := assert.New(t)
	a.ElementsMatch([]string{"O2", "Vodafone"}, c.Providers("Vereinigtes Königreich"))
	a.Nil(c.Providers("United Kingdom"))
	name, _ := c.CountryFromCode("GB")
	a.Equal("Vereinigtes Königreich", name)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	goodProviders := filepath.Join("testdata", "serviceproviders.xml")
	goodCodes := filepath.Join("testdata", "iso_3166.xml")

	for _, tc := range []struct {
		name      string
		providers string
		codes     string
		wantTag   string
	}{
		{
			name:      "missing provider database",
			providers: filepath.Join(dir, "does-not-exist.xml"),
			codes:     goodCodes,
			wantTag:   mberr.TagUnreadableSource,
		},
		{
			name:      "missing country codes",
			providers: goodProviders,
			codes:     filepath.Join(dir, "does-not-exist.xml"),
			wantTag:   mberr.TagUnreadableSource,
		},
		{
			name:      "unsupported provider database format",
			providers: write("format-1.xml", `<serviceproviders format="1.0"><country code="gb"/></serviceproviders>`),
			codes:     goodCodes,
			wantTag:   mberr.TagUnsupportedFormat,
		},
		{
			name:      "malformed provider database",
			providers: write("broken.xml", `<serviceproviders><country code="gb">`),
			codes:     goodCodes,
			wantTag:   mberr.TagMalformedDocument,
		},
		{
			name:      "malformed country codes",
			providers: goodProviders,
			codes:     write("broken-iso.xml", `<iso_3166_entries><iso_3166_entry`),
			wantTag:   mberr.TagMalformedDocument,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			c, err := Load(WithProviderDatabase(tc.providers), WithCountryCodes(tc.codes))
			a.Nil(c)
			if a.Error(err) {
				a.True(mberr.HasTag(err, tc.wantTag), "got error %v", err)
			}
		})
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	c, err := Parse(
		strings.NewReader(`<serviceproviders format="1.0"><country code="gb"><provider><name>O2</name></provider></country></serviceproviders>`),
		strings.NewReader(`<iso_3166_entries><iso_3166_entry alpha_2_code="GB" name="United Kingdom"/></iso_3166_entries>`))
	assert.Nil(t, c)
	assert.True(t, mberr.HasTag(err, mberr.TagUnsupportedFormat))
}

func TestDump(t *testing.T) {
	c, err := Parse(
		strings.NewReader(`<serviceproviders format="2.0">
<country code="gb"><provider><name>O2</name><gsm>
<apn value="payandgo.o2.co.uk"><name>Pay and Go (Prepaid)</name><username>payandgo</username><password>password</password></apn>
</gsm></provider>
<provider><name>EE</name><cdma/></provider></country>
</serviceproviders>`),
		strings.NewReader(`<iso_3166_entries>
<iso_3166_entry alpha_2_code="GB" name="United Kingdom"/>
<iso_3166_entry alpha_2_code="FR" name="France"/>
</iso_3166_entries>`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Dump(&buf))
	assert.Equal(t, `# country codes
France : FR
United Kingdom : GB
# service providers

Code: GB
	Provider: EE
	Provider: O2
		Plan: Pay and Go (Prepaid)
			APN: payandgo.o2.co.uk
			Username: payandgo
			Password: password
`, buf.String())
}
