package catalog

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
)

// Dump writes both tables to w in a stable, human readable layout:
// first every country name with its code, then every country code with
// its providers, plans and connection settings.
func (c *Catalog) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# country codes")
	for _, name := range c.Countries() {
		fmt.Fprintf(bw, "%s : %s\n", name, c.codes[name])
	}

	fmt.Fprintln(bw, "# service providers")
	for _, code := range sortedKeys(c.countries) {
		fmt.Fprintf(bw, "\nCode: %s\n", code)
		providers := c.countries[code]
		for _, provider := range sortedKeys(providers) {
			fmt.Fprintf(bw, "\tProvider: %s\n", provider)
			plans := providers[provider]
			for _, plan := range sortedKeys(plans) {
				info := plans[plan]
				fmt.Fprintf(bw, "\t\tPlan: %s\n", plan)
				fmt.Fprintf(bw, "\t\t\tAPN: %s\n", info.APN)
				fmt.Fprintf(bw, "\t\t\tUsername: %s\n", info.Username)
				fmt.Fprintf(bw, "\t\t\tPassword: %s\n", info.Password)
			}
		}
	}

	return bw.Flush()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
