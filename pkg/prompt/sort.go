package prompt

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByName returns a copy of prompts ordered by name for display. Case and
// accents are ignored, so "api", "Äpfel" and "Zebra" sort the way a reader
// expects; exact ties fall back to byte order to keep the result stable.
func SortByName(prompts []Prompt) []Prompt {
	out := make([]Prompt, len(prompts))
	copy(out, prompts)

	c := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := c.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
