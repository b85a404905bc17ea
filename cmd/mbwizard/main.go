// Command mbwizard configures the data connection of an oFono managed
// modem from the mobile broadband provider database.
//
//	mbwizard -path /ril_0
//	mbwizard -list "United Kingdom" O2
//	mbwizard -dump
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/andaru/mbwizard/catalog"
	"github.com/andaru/mbwizard/config"
	"github.com/andaru/mbwizard/locale"
	"github.com/andaru/mbwizard/ofono"
	"github.com/andaru/mbwizard/wizard"
	"github.com/golang/glog"
)

const usage = `Usage:
    %s [options] -path MODEM
    %s [options] -list [COUNTRY [PROVIDER [PLAN]]]
    %s [options] -dump

Options are:
`

var (
	configPath  = flag.String("config", config.DefaultPath, "configuration file")
	modemPath   = flag.String("path", "", "object path of the modem")
	providers   = flag.String("providers", "", "mobile broadband provider database (serviceproviders.xml)")
	codes       = flag.String("codes", "", "ISO 3166 country code list (iso_3166.xml)")
	localeName  = flag.String("locale", "", "locale used for country names, e.g. de_DE.UTF-8")
	contextType = flag.String("context-type", "", "oFono context type to configure")
	list        = flag.Bool("list", false, "list countries, providers, plans or plan settings and exit")
	dump        = flag.Bool("dump", false, "print the whole catalog and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	cfg := config.New()
	if err := cfg.Update(*configPath); err != nil {
		glog.Exitf("%v", err)
	}
	overrideConfig(cfg)

	tag := locale.FromEnv()
	if cfg.Locale != "" {
		var err error
		if tag, err = locale.Parse(cfg.Locale); err != nil {
			glog.Exitf("%v", err)
		}
	}

	cat, err := catalog.Load(append(cfg.CatalogOptions(), catalog.WithTranslator(locale.NewTranslator(tag)))...)
	if err != nil {
		glog.Exitf("loading catalog: %v", err)
	}

	switch {
	case *dump:
		if err := cat.Dump(os.Stdout); err != nil {
			glog.Exitf("%v", err)
		}
		return
	case *list:
		if !listCatalog(os.Stdout, cat, flag.Args()) {
			os.Exit(1)
		}
		return
	}

	if cfg.Modem == "" {
		fmt.Fprintln(os.Stderr, "Provide a modem path.")
		flag.Usage()
		os.Exit(2)
	}

	client, err := ofono.Dial(ofono.WithContextType(cfg.ContextType))
	if err != nil {
		glog.Exitf("%v", err)
	}
	defer client.Close()

	region, _ := locale.Region(tag)
	w := wizard.New(cat, os.Stdin, os.Stdout, wizard.Config{Region: region})
	w.Run(&applier{client: client, modem: cfg.Modem})

	if errs := w.Errors(); len(errs) > 0 {
		client.Close()
		glog.Exitf("%v", errs[0])
	}
}

// overrideConfig applies the flags given on the command line over the
// configuration file.
func overrideConfig(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.Modem = *modemPath
		case "providers":
			cfg.ProviderDatabase = *providers
		case "codes":
			cfg.CountryCodes = *codes
		case "locale":
			cfg.Locale = *localeName
		case "context-type":
			cfg.ContextType = *contextType
		}
	})
}

// applier pushes the confirmed plan to the modem
type applier struct {
	client *ofono.Client
	modem  string
}

func (a *applier) OnConfirm(w *wizard.Wizard, s wizard.Selection) error {
	glog.Infof("applying %s / %s / %s to %s", s.Country, s.Provider, s.Plan, a.modem)
	return a.client.Apply(a.modem, s.Info)
}

func (a *applier) OnClose(w *wizard.Wizard) {
	if w.State.Page == wizard.PageDone {
		fmt.Println("Settings applied.")
	}
}

// listCatalog prints the level of the catalog named by args. It reports
// false if the names do not resolve.
func listCatalog(w io.Writer, cat *catalog.Catalog, args []string) bool {
	var names []string
	switch len(args) {
	case 0:
		names = cat.Countries()
	case 1:
		names = cat.Providers(args[0])
	case 2:
		names = cat.Plans(args[0], args[1])
	default:
		info, ok := cat.PlanInfo(args[0], args[1], args[2])
		if !ok {
			return false
		}
		fmt.Fprintf(w, "APN: %s\nUsername: %s\nPassword: %s\n", info.APN, info.Username, info.Password)
		return true
	}
	if len(names) == 0 {
		return false
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return true
}
