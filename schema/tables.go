package schema

// PlanInfo holds the connection settings of one billing plan.
type PlanInfo struct {
	APN      string `json:"apn" yaml:"apn"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// PlanTable maps a plan name to its connection settings.
type PlanTable map[string]*PlanInfo

// ProviderTable maps a provider name to its plans. Providers declaring
// no GSM APNs map to a nil PlanTable.
type ProviderTable map[string]PlanTable

// CountryTable maps an upper-case ISO 3166 alpha-2 code to the
// country's providers.
type CountryTable map[string]ProviderTable

// CodeTable maps a country display name to its ISO 3166 alpha-2 code.
type CodeTable map[string]string
