// Package pattern builds anchored, longest-first regular expressions over the
// names of one administrative level.
package pattern

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// Candidate is a name with an optional leading qualifier, such as the county
// (郡) in front of a town-level municipality.
type Candidate struct {
	Qualifier string
	Name      string
}

// Source is the full name the candidate stands for.
func (c Candidate) Source() string {
	return c.Qualifier + c.Name
}

// Pattern matches a candidate at the start of a text.
type Pattern struct {
	Regexp *regexp.Regexp
	Source string
}

// Names wraps plain names as candidates without a qualifier.
func Names(names []string) []Candidate {
	cands := make([]Candidate, len(names))
	for i, n := range names {
		cands[i] = Candidate{Name: n}
	}
	return cands
}

// Build compiles one pattern per distinct candidate, ordered by the rune length
// of the full name, longest first. Ties keep the input order.
func Build(cands []Candidate) []Pattern {
	seen := make(map[string]struct{}, len(cands))
	patterns := make([]Pattern, 0, len(cands))
	for _, c := range cands {
		src := c.Source()
		if c.Name == "" {
			continue
		}
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		patterns = append(patterns, Pattern{
			Regexp: regexp.MustCompile(expr(c)),
			Source: src,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return utf8.RuneCountInString(patterns[i].Source) > utf8.RuneCountInString(patterns[j].Source)
	})
	return patterns
}

func expr(c Candidate) string {
	if c.Qualifier == "" {
		return "^" + regexp.QuoteMeta(c.Name)
	}
	return "^(?:" + regexp.QuoteMeta(c.Qualifier) + ")?" + regexp.QuoteMeta(c.Name)
}

// Match returns the first pattern that matches the start of text and the matched prefix.
func Match(patterns []Pattern, text string) (Pattern, string, bool) {
	for _, p := range patterns {
		if m := p.Regexp.FindString(text); m != "" {
			return p, m, true
		}
	}
	return Pattern{}, "", false
}
