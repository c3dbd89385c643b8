package funcs

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateFuncs is shared by the text and html email templates.
var TemplateFuncs = map[string]any{
	"title":     toTitle,
	"uppercase": strings.ToUpper,
	"lowercase": strings.ToLower,
	"yesno":     yesno,
	"percent":   percent,
}

// A Caser is stateful, so each call gets its own.
func toTitle(s string) string {
	return cases.Title(language.English).String(s)
}

func yesno(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// percent renders a rate such as 0.85 as "85%".
func percent(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}
