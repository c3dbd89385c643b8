package validator

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

var (
	RgxContractorID = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

func Between[T constraints.Ordered](value, min, max T) bool {
	return value >= min && value <= max
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func In[T comparable](value T, safelist ...T) bool {
	return slices.Contains(safelist, value)
}
