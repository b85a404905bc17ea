package wizard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andaru/mbwizard/catalog"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProviders = `<serviceproviders format="2.0">
<country code="gb">
  <provider><name>O2</name><gsm>
    <apn value="mobile.o2.co.uk"><name>Contract</name><username>vertigo</username><password>password</password></apn>
    <apn value="payandgo.o2.co.uk"><name>Pay and Go (Prepaid)</name><username>payandgo</username><password>password</password></apn>
  </gsm></provider>
  <provider><name>EE</name><cdma><username>ee</username></cdma></provider>
</country>
</serviceproviders>`

const testCodes = `<iso_3166_entries>
<iso_3166_entry alpha_2_code="GB" name="United Kingdom"/>
<iso_3166_entry alpha_2_code="FR" name="France"/>
</iso_3166_entries>`

var (
	contract = catalog.PlanInfo{APN: "mobile.o2.co.uk", Username: "vertigo", Password: "password"}
	payandgo = catalog.PlanInfo{APN: "payandgo.o2.co.uk", Username: "payandgo", Password: "password"}
)

type testHandler struct {
	err       error
	confirmed []Selection
	closed    int
}

func (h *testHandler) OnConfirm(w *Wizard, s Selection) error {
	h.confirmed = append(h.confirmed, s)
	return h.err
}

func (h *testHandler) OnClose(w *Wizard) { h.closed++ }

func TestWizard(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(testProviders), strings.NewReader(testCodes))
	require.NoError(t, err)

	for _, tc := range []struct {
		name       string
		input      string
		config     Config
		handlerErr error

		wantPage   Page
		want       *Selection
		wantOutput []string
	}{
		{
			name:     "choices by number",
			input:    "2\n2\n2\ny\n",
			wantPage: PageDone,
			want:     &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Pay and Go (Prepaid)", Info: payandgo},
			wantOutput: []string{
				"    1) France\n    2) United Kingdom\n",
				"    1) EE\n    2) O2\n",
				"  Access point name: payandgo.o2.co.uk\n",
			},
		},
		{
			name:       "locale preselects the country",
			input:      "\nO2\nContract\nyes\n",
			config:     Config{Region: "gb"},
			wantPage:   PageDone,
			want:       &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Contract", Info: contract},
			wantOutput: []string{"*   2) United Kingdom\n", "Country [United Kingdom] (q quits): "},
		},
		{
			name:       "country without providers",
			input:      "France\n2\nO2\nContract\ny\n",
			wantPage:   PageDone,
			want:       &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Contract", Info: contract},
			wantOutput: []string{"No mobile broadband providers are known for France.\n"},
		},
		{
			name:       "provider without plans",
			input:      "2\nEE\nO2\n1\ny\n",
			wantPage:   PageDone,
			want:       &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Contract", Info: contract},
			wantOutput: []string{"EE has no GSM data plans.\n"},
		},
		{
			name:     "back navigation",
			input:    "2\n2\nb\nb\n\n2\n1\ny\n",
			wantPage: PageDone,
			want:     &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Contract", Info: contract},
		},
		{
			name:     "back from confirmation",
			input:    "2\n2\n1\nb\n2\ny\n",
			wantPage: PageDone,
			want:     &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Pay and Go (Prepaid)", Info: payandgo},
		},
		{
			name:       "invalid answers are repeated",
			input:      "7\nGermany\n2\n0\n2\n1\nmaybe\ny\n",
			wantPage:   PageDone,
			want:       &Selection{Country: "United Kingdom", Provider: "O2", Plan: "Contract", Info: contract},
			wantOutput: []string{`"7" is not a choice.`, `"Germany" is not a choice.`, `"0" is not a choice.`},
		},
		{
			name:     "declined",
			input:    "2\n2\n1\nn\n",
			wantPage: PageAborted,
		},
		{
			name:     "quit",
			input:    "2\nq\n",
			wantPage: PageAborted,
		},
		{
			name:     "end of input",
			input:    "2\n",
			wantPage: PageAborted,
		},
		{
			name:       "apply fails",
			input:      "2\n2\n1\ny\n",
			handlerErr: errors.New("org.ofono.Error.InProgress"),
			wantPage:   PageAborted,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			var out bytes.Buffer
			h := &testHandler{err: tc.handlerErr}
			w := New(cat, strings.NewReader(tc.input), &out, tc.config)
			w.Run(h)

			a.Equal(tc.wantPage, w.State.Page, out.String())
			a.Equal(1, h.closed)
			got, ok := w.Selected()
			if tc.want != nil {
				a.True(ok)
				a.Equal(*tc.want, got)
				a.Equal([]Selection{*tc.want}, h.confirmed)
			} else {
				a.False(ok)
			}
			if tc.handlerErr != nil {
				a.Len(h.confirmed, 1)
				a.Equal([]error{tc.handlerErr}, w.Errors())
			} else {
				a.Empty(w.Errors())
			}
			for _, want := range tc.wantOutput {
				a.Contains(out.String(), want)
			}
		})
	}
}

func TestHandlerFunc(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(testProviders), strings.NewReader(testCodes))
	require.NoError(t, err)

	var got Selection
	w := New(cat, strings.NewReader("\n\n\n\ny\n"), &bytes.Buffer{}, Config{Region: "GB"})
	w.Run(HandlerFunc(func(w *Wizard, s Selection) error {
		got = s
		return nil
	}))
	// empty answers without a preselection are repeated
	assert.Equal(t, PageAborted, w.State.Page)
	assert.Equal(t, Selection{}, got)
}

func TestPageString(t *testing.T) {
	assert.Equal(t, "confirm", PageConfirm.String())
	assert.Equal(t, "Page(42)", Page(42).String())
}
