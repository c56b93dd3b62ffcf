// pkg/document/format.go

package document

import (
	"strings"
	"time"

	"github.com/bizbooks-service/pkg/money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

type dateLocale struct {
	tag    language.Tag
	layout string
}

// The first entry is the fallback for tags nothing else matches.
var dateLocales = []dateLocale{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.MustParse("en-AU"), "2/01/2006"},
	{language.MustParse("en-CA"), "2006-01-02"},
	{language.MustParse("de-DE"), "2.1.2006"},
	{language.MustParse("fr-FR"), "02/01/2006"},
	{language.MustParse("es-ES"), "2/1/2006"},
	{language.MustParse("nl-NL"), "2-1-2006"},
	{language.MustParse("ja-JP"), "2006/01/02"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// shortDateLayout picks the closest supported locale, so "en_gb" and "de-AT"
// resolve to British English and German.
func shortDateLayout(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return dateLocales[0].layout
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		return dateLocales[0].layout
	}
	return dateLocales[idx].layout
}

// FormatDate renders t in the locale's short date form. Unknown locales fall
// back to en-US.
func FormatDate(t time.Time, locale string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(shortDateLayout(locale))
}

func formatMoney(d decimal.Decimal) string {
	return money.Format(d)
}

func formatQuantity(d decimal.Decimal) string {
	return d.String()
}
