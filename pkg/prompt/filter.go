package prompt

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Filter keeps the prompts whose name matches a glob pattern such as
// "review-*" or "{fix,test}*". Matching ignores case. An empty pattern
// keeps everything.
func Filter(prompts []Prompt, pattern string) ([]Prompt, error) {
	if pattern == "" {
		return prompts, nil
	}

	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var out []Prompt
	for _, p := range prompts {
		if g.Match(strings.ToLower(p.Name)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterScope keeps the prompts of one scope. An empty scope keeps everything.
func FilterScope(prompts []Prompt, scope Scope) []Prompt {
	if scope == "" {
		return prompts
	}
	var out []Prompt
	for _, p := range prompts {
		if p.Scope == scope {
			out = append(out, p)
		}
	}
	return out
}
