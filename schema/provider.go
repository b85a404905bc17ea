package schema

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/andaru/mbwizard/mberr"
	"github.com/andaru/mbwizard/xmlutil"
	"github.com/golang/glog"
)

// State is the provider database parser state.
type State int

const (
	// StateTopLevel is outside of any <country> element
	StateTopLevel State = iota
	// StateCountry is inside <country>
	StateCountry
	// StateProvider is inside <country>/<provider>
	StateProvider
	// StateGSM is inside <provider>/<gsm>
	StateGSM
	// StateGSMAPN is inside <gsm>/<apn value="...">
	StateGSMAPN
	// StateCDMA is inside <provider>/<cdma>
	StateCDMA
	// StateError is terminal; the document is not supported
	StateError
)

func (s State) String() string {
	switch s {
	case StateTopLevel:
		return "toplevel"
	case StateCountry:
		return "country"
	case StateProvider:
		return "provider"
	case StateGSM:
		return "gsm"
	case StateGSMAPN:
		return "gsm-apn"
	case StateCDMA:
		return "cdma"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SupportedFormat is the only serviceproviders format version understood.
const SupportedFormat = "2.0"

const (
	elemServiceProviders = "serviceproviders"
	elemCountry          = "country"
	elemProvider         = "provider"
	elemGSM              = "gsm"
	elemCDMA             = "cdma"
	elemAPN              = "apn"
	elemName             = "name"
	elemUsername         = "username"
	elemPassword         = "password"

	// DefaultPlanName names an <apn> without a <name> child.
	DefaultPlanName = "Default"
)

// ProviderParser builds a CountryTable from a mobile broadband provider
// database document. It implements Handler.
//
// Records are accumulated in pending fields and only inserted into their
// parent table when the enclosing element closes. Tables are created on
// first insertion; a key seen twice keeps the last value.
type ProviderParser struct {
	state State
	err   error

	// text is the character data seen since the last element boundary
	text string

	country  string
	provider string

	apn      string
	plan     *string
	username string
	password string

	plans     PlanTable
	providers ProviderTable
	countries CountryTable
}

// NewProviderParser returns a parser in the top-level state.
func NewProviderParser() *ProviderParser { return &ProviderParser{} }

// State returns the current parser state.
func (p *ProviderParser) State() State { return p.state }

// Countries returns the table built so far; nil until the first
// </country> is seen.
func (p *ProviderParser) Countries() CountryTable { return p.countries }

// Failed returns the unsupported format error once the parser has
// entered StateError.
func (p *ProviderParser) Failed() error { return p.err }

// CharData records t as the current text, replacing any earlier text.
func (p *ProviderParser) CharData(t xml.CharData) { p.text = string(t) }

// StartElement performs the state transitions triggered by opening tags.
func (p *ProviderParser) StartElement(se xml.StartElement) {
	p.text = ""

	switch p.state {
	case StateTopLevel:
		p.toplevelStart(se)
	case StateCountry:
		if xmlutil.IsElement(se, elemProvider) {
			p.state = StateProvider
		}
	case StateProvider:
		switch {
		case xmlutil.IsElement(se, elemGSM):
			p.state = StateGSM
		case xmlutil.IsElement(se, elemCDMA):
			p.state = StateCDMA
		}
	case StateGSM:
		if xmlutil.IsElement(se, elemAPN) {
			if value, ok := xmlutil.Attr(se, "value"); ok {
				p.apn = strings.TrimSpace(value)
				p.state = StateGSMAPN
			}
		}
	}
}

func (p *ProviderParser) toplevelStart(se xml.StartElement) {
	switch {
	case xmlutil.IsElement(se, elemServiceProviders):
		if format, ok := xmlutil.Attr(se, "format"); ok && format != SupportedFormat {
			glog.Warningf("mobile broadband provider database format %q not supported", format)
			p.err = mberr.UnsupportedFormat(format)
			p.state = StateError
		}
	case xmlutil.IsElement(se, elemCountry):
		if code, ok := xmlutil.Attr(se, "code"); ok {
			p.country = strings.ToUpper(code)
			p.state = StateCountry
		}
	}
}

// EndElement performs the state transitions triggered by closing tags,
// inserting completed records into their parent tables.
func (p *ProviderParser) EndElement(ee xml.EndElement) {
	text := p.text
	p.text = ""

	switch p.state {
	case StateCountry:
		if xmlutil.IsElement(ee, elemCountry) {
			if p.countries == nil {
				p.countries = CountryTable{}
			}
			p.countries[p.country] = p.providers
			p.country, p.providers = "", nil
			p.state = StateTopLevel
		}

	case StateProvider:
		switch {
		case xmlutil.IsElement(ee, elemName):
			p.provider = text
		case xmlutil.IsElement(ee, elemProvider):
			if p.providers == nil {
				p.providers = ProviderTable{}
			}
			p.providers[p.provider] = p.plans
			p.provider, p.plans = "", nil
			p.state = StateCountry
		}

	case StateGSM:
		if xmlutil.IsElement(ee, elemGSM) {
			p.state = StateProvider
		}

	case StateGSMAPN:
		p.apnEnd(ee, text)

	case StateCDMA:
		// CDMA settings are not recorded
		if xmlutil.IsElement(ee, elemCDMA) {
			p.state = StateProvider
		}
	}
}

func (p *ProviderParser) apnEnd(ee xml.EndElement, text string) {
	switch {
	case xmlutil.IsElement(ee, elemName):
		p.plan = &text
	case xmlutil.IsElement(ee, elemUsername):
		p.username = text
	case xmlutil.IsElement(ee, elemPassword):
		p.password = text
	case xmlutil.IsElement(ee, elemAPN):
		if p.plans == nil {
			p.plans = PlanTable{}
		}
		name := DefaultPlanName
		if p.plan != nil {
			name = *p.plan
		}
		p.plans[name] = &PlanInfo{APN: p.apn, Username: p.username, Password: p.password}

		p.apn, p.plan, p.username, p.password = "", nil, "", ""
		p.state = StateGSM
	}
}
