package wizard

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/andaru/mbwizard/catalog"
	"github.com/golang/glog"
)

// Catalog is the part of *catalog.Catalog the wizard queries.
type Catalog interface {
	Countries() []string
	Providers(country string) []string
	Plans(country, provider string) []string
	PlanInfo(country, provider, plan string) (catalog.PlanInfo, bool)
	CountryFromCode(code string) (string, bool)
}

// New returns a new Wizard reading answers from in and writing pages
// to out.
func New(cat Catalog, in io.Reader, out io.Writer, config Config) *Wizard {
	return &Wizard{
		Config: &config,
		State:  &State{},
		cat:    cat,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run executes the Wizard w, using Handler h
func Run(w *Wizard, h Handler) {
	for w.State.Page < PageDone {
		switch w.State.Page {
		case PageCountry:
			w.countryPage()
		case PageProvider:
			w.providerPage()
		case PagePlan:
			w.planPage()
		case PageConfirm:
			if w.confirmPage() {
				if w.AddError(h.OnConfirm(w, w.State.Selection)) > 0 {
					w.State.Page = PageAborted
				} else {
					w.State.Page = PageDone
				}
			}
		}
	}
	h.OnClose(w)
}

// Wizard is a linear, line oriented setup wizard
type Wizard struct {
	Config *Config
	State  *State

	cat Catalog
	in  *bufio.Scanner
	out io.Writer
}

// Handler is the Wizard handler interface.
//
// See Run() for usage.
type Handler interface {
	// OnConfirm is called once, when the user confirms the selected
	// plan. A non-nil error is recorded and aborts the wizard.
	OnConfirm(*Wizard, Selection) error
	// OnClose is called when the wizard reaches PageDone or
	// PageAborted.
	OnClose(*Wizard)
}

// HandlerFunc adapts a confirmation function to Handler; OnClose does
// nothing.
type HandlerFunc func(*Wizard, Selection) error

func (f HandlerFunc) OnConfirm(w *Wizard, s Selection) error { return f(w, s) }
func (f HandlerFunc) OnClose(*Wizard)                        {}

// Config contains Wizard configuration
type Config struct {
	// Region is the ISO 3166 alpha-2 code of the country to
	// preselect, usually derived from the user's locale
	Region string
}

// Selection is the user's choice so far
type Selection struct {
	Country  string
	Provider string
	Plan     string
	Info     catalog.PlanInfo
}

// State contains runtime Wizard state
type State struct {
	// Page is the page shown next
	Page Page
	// Selection holds the answers given so far
	Selection Selection

	errs []error
}

// Page is a Wizard page.
type Page int

const (
	// PageCountry asks for the country
	PageCountry Page = iota
	// PageProvider asks for the provider within the country
	PageProvider
	// PagePlan asks for the provider's billing plan
	PagePlan
	// PageConfirm shows the connection settings and asks to apply them
	PageConfirm

	// PageDone indicates the settings were confirmed and applied
	PageDone
	// PageAborted indicates the user quit, input ended or applying
	// the settings failed
	PageAborted
)

func (p Page) String() string {
	switch p {
	case PageCountry:
		return "country"
	case PageProvider:
		return "provider"
	case PagePlan:
		return "plan"
	case PageConfirm:
		return "confirm"
	case PageDone:
		return "done"
	case PageAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Page(%d)", int(p))
	}
}

// Run executes the wizard using Handler h
func (w *Wizard) Run(h Handler) { Run(w, h) }

// AddError adds an error to the wizard state
func (w *Wizard) AddError(errs ...error) (added int) {
	for _, err := range errs {
		if err != nil {
			w.State.errs = append(w.State.errs, err)
			added++
		}
	}
	return added
}

// Errors returns all wizard errors
func (w *Wizard) Errors() []error { return w.State.errs }

// Selected returns the confirmed selection, if the wizard is done.
func (w *Wizard) Selected() (Selection, bool) {
	if w.State.Page != PageDone {
		return Selection{}, false
	}
	return w.State.Selection, true
}

type answer int

const (
	answerChosen answer = iota
	answerBack
	answerQuit
)

func (w *Wizard) countryPage() {
	var preselect string
	if w.Config.Region != "" {
		preselect, _ = w.cat.CountryFromCode(w.Config.Region)
	}
	if w.State.Selection.Country != "" {
		preselect = w.State.Selection.Country
	}

	country, a := w.choose("Country", w.cat.Countries(), preselect, false)
	if a == answerQuit {
		w.State.Page = PageAborted
		return
	}
	if len(w.cat.Providers(country)) == 0 {
		fmt.Fprintf(w.out, "No mobile broadband providers are known for %s.\n", country)
		return
	}
	w.State.Selection = Selection{Country: country}
	w.State.Page = PageProvider
}

func (w *Wizard) providerPage() {
	sel := &w.State.Selection
	provider, a := w.choose("Provider", sorted(w.cat.Providers(sel.Country)), sel.Provider, true)
	switch a {
	case answerQuit:
		w.State.Page = PageAborted
		return
	case answerBack:
		w.State.Page = PageCountry
		return
	}
	if len(w.cat.Plans(sel.Country, provider)) == 0 {
		fmt.Fprintf(w.out, "%s has no GSM data plans.\n", provider)
		return
	}
	sel.Provider, sel.Plan = provider, ""
	w.State.Page = PagePlan
}

func (w *Wizard) planPage() {
	sel := &w.State.Selection
	plan, a := w.choose("Plan", sorted(w.cat.Plans(sel.Country, sel.Provider)), sel.Plan, true)
	switch a {
	case answerQuit:
		w.State.Page = PageAborted
		return
	case answerBack:
		w.State.Page = PageProvider
		return
	}
	info, ok := w.cat.PlanInfo(sel.Country, sel.Provider, plan)
	if !ok {
		return
	}
	sel.Plan, sel.Info = plan, info
	w.State.Page = PageConfirm
}

// confirmPage reports whether the user accepted the selection.
func (w *Wizard) confirmPage() bool {
	sel := w.State.Selection
	fmt.Fprintf(w.out, "\n%s, %s, %s\n", sel.Country, sel.Provider, sel.Plan)
	fmt.Fprintf(w.out, "  Access point name: %s\n", sel.Info.APN)
	fmt.Fprintf(w.out, "  Username:          %s\n", sel.Info.Username)
	fmt.Fprintf(w.out, "  Password:          %s\n", sel.Info.Password)

	for {
		fmt.Fprint(w.out, "Apply these settings? [y/n/b] ")
		line, ok := w.readLine()
		if !ok {
			w.State.Page = PageAborted
			return false
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		case "n", "no", "q":
			w.State.Page = PageAborted
			return false
		case "b":
			w.State.Page = PagePlan
			return false
		}
	}
}

// choose shows a numbered list and reads a selection, by number or by
// exact name. An empty answer takes preselect, when set.
func (w *Wizard) choose(title string, choices []string, preselect string, back bool) (string, answer) {
	fmt.Fprintf(w.out, "\n%s\n", title)
	for i, choice := range choices {
		mark := " "
		if choice == preselect {
			mark = "*"
		}
		fmt.Fprintf(w.out, "%s %3d) %s\n", mark, i+1, choice)
	}

	for {
		hint := "q quits"
		if back {
			hint = "b goes back, " + hint
		}
		if preselect != "" {
			fmt.Fprintf(w.out, "%s [%s] (%s): ", title, preselect, hint)
		} else {
			fmt.Fprintf(w.out, "%s (%s): ", title, hint)
		}

		line, ok := w.readLine()
		if !ok {
			return "", answerQuit
		}
		switch {
		case line == "q":
			return "", answerQuit
		case line == "b" && back:
			return "", answerBack
		case line == "" && preselect != "":
			return preselect, answerChosen
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], answerChosen
		}
		for _, choice := range choices {
			if choice == line {
				return choice, answerChosen
			}
		}
		fmt.Fprintf(w.out, "%q is not a choice.\n", line)
	}
}

func (w *Wizard) readLine() (string, bool) {
	if !w.in.Scan() {
		if err := w.in.Err(); err != nil {
			glog.Warningf("wizard: reading input: %v", err)
			w.AddError(err)
		}
		return "", false
	}
	return strings.TrimSpace(w.in.Text()), true
}

func sorted(s []string) []string {
	sort.Strings(s)
	return s
}
