// Package report renders indicator summaries for people and for the
// downstream prompt builder.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/stockbrief/indicators"
)

// Output formats accepted by Format.
const (
	FormatNameJSON     = "json"
	FormatNameYAML     = "yaml"
	FormatNameMarkdown = "md"
	FormatNameOrg      = "org"
)

// Formats lists the accepted format names.
var Formats = []string{FormatNameJSON, FormatNameYAML, FormatNameMarkdown, FormatNameOrg}

// unsignedKeys are percentages that are never negative.
var unsignedKeys = map[string]bool{
	"vol_21d": true,
	"vol_63d": true,
}

// ratioKeys are rendered as percentages in human formats.
var ratioKeys = map[string]bool{
	"dist_to_ema50":     true,
	"dist_to_ema200":    true,
	"return_5d":         true,
	"return_21d":        true,
	"return_63d":        true,
	"return_252d":       true,
	"return_ytd":        true,
	"vol_21d":           true,
	"vol_63d":           true,
	"max_drawdown_252d": true,
}

// Format renders s in the named format.
func Format(format, symbol string, asOf time.Time, s indicators.Summary) (string, error) {
	switch strings.ToLower(format) {
	case FormatNameJSON:
		return FormatJSON(symbol, asOf, s)
	case FormatNameYAML, "yml":
		return FormatYAML(symbol, asOf, s)
	case FormatNameMarkdown, "markdown":
		return FormatMarkdown(symbol, asOf, s), nil
	case FormatNameOrg:
		return FormatOrg(symbol, asOf, s), nil
	default:
		return "", fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// Ext returns the file extension for a format name.
func Ext(format string) string {
	switch strings.ToLower(format) {
	case FormatNameYAML, "yml":
		return ".yaml"
	case FormatNameMarkdown, "markdown":
		return ".md"
	case FormatNameOrg:
		return ".org"
	default:
		return ".json"
	}
}

type envelope struct {
	Symbol     string             `json:"symbol" yaml:"symbol"`
	AsOf       string             `json:"as_of" yaml:"as_of"`
	Technicals indicators.Summary `json:"technicals" yaml:"technicals"`
}

func wrap(symbol string, asOf time.Time, s indicators.Summary) envelope {
	return envelope{Symbol: symbol, AsOf: asOf.Format(time.DateOnly), Technicals: s}
}

// FormatJSON renders the summary as indented JSON. Null fields are null.
func FormatJSON(symbol string, asOf time.Time, s indicators.Summary) (string, error) {
	b, err := json.MarshalIndent(wrap(symbol, asOf, s), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// FormatYAML renders the summary as YAML.
func FormatYAML(symbol string, asOf time.Time, s indicators.Summary) (string, error) {
	b, err := yaml.Marshal(wrap(symbol, asOf, s))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatMarkdown renders a two-column table in SummaryKeys order.
func FormatMarkdown(symbol string, asOf time.Time, s indicators.Summary) string {
	m := s.Map()

	var b strings.Builder
	fmt.Fprintf(&b, "## %s technicals (%s)\n\n", symbol, asOf.Format(time.DateOnly))
	b.WriteString("| Indicator | Value |\n")
	b.WriteString("|---|---|\n")
	for _, k := range indicators.SummaryKeys {
		fmt.Fprintf(&b, "| %s | %s |\n", k, value(k, m[k]))
	}
	return b.String()
}

// FormatOrg renders an Org-mode heading with every field in a PROPERTIES
// drawer, plus a Notes section to write in.
func FormatOrg(symbol string, asOf time.Time, s indicators.Summary) string {
	m := s.Map()

	var b strings.Builder
	fmt.Fprintf(&b, "** Technicals: %s (%s)\n", symbol, asOf.Format(time.DateOnly))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":SYMBOL: %s\n", symbol)
	fmt.Fprintf(&b, ":AS_OF: %s\n", asOf.Format(time.DateOnly))
	for _, k := range indicators.SummaryKeys {
		fmt.Fprintf(&b, ":%s: %s\n", strings.ToUpper(k), value(k, m[k]))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")
	return b.String()
}

// FormatOrgAll renders several summaries separated by blank lines.
func FormatOrgAll(items []Item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatOrg(it.Symbol, it.AsOf, it.Summary))
	}
	return b.String()
}

// Item is one symbol's summary for multi-symbol reports.
type Item struct {
	Symbol  string
	AsOf    time.Time
	Summary indicators.Summary
}

func value(key string, v any) string {
	switch x := v.(type) {
	case nil:
		return "n/a"
	case string:
		return x
	case float64:
		if unsignedKeys[key] {
			return fmt.Sprintf("%.2f%%", x*100)
		}
		if ratioKeys[key] {
			return fmt.Sprintf("%+.2f%%", x*100)
		}
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(x)
	}
}
