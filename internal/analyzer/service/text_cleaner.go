package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Social sharing widgets and footer text that scrapers leave in article bodies.
var defaultBoilerplatePatterns = []string{
	`Share\s+Share\s+Facebook\s+Copy\s+Link\s+copied\s+Print\s+Email\s+X\s+LinkedIn`,
	`Share on (Facebook|Twitter|LinkedIn|Email)`,
	`(Like|Follow) us on (Facebook|Twitter|LinkedIn)`,
	`Click to share on \w+`,
	`Copyright © \d{4}.*All rights reserved`,
}

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// TextCleaner strips boilerplate and normalizes whitespace. It is safe for concurrent use.
type TextCleaner struct {
	patterns []*regexp.Regexp
}

// NewTextCleaner compiles the default boilerplate patterns plus any extra ones, all case-insensitive.
func NewTextCleaner(extraPatterns ...string) (*TextCleaner, error) {
	all := append(append([]string{}, defaultBoilerplatePatterns...), extraPatterns...)
	patterns := make([]*regexp.Regexp, 0, len(all))
	for _, p := range all {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile boilerplate pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return &TextCleaner{patterns: patterns}, nil
}

// MustTextCleaner is NewTextCleaner for patterns known at compile time.
func MustTextCleaner(extraPatterns ...string) *TextCleaner {
	c, err := NewTextCleaner(extraPatterns...)
	if err != nil {
		panic(err)
	}
	return c
}

// Clean removes boilerplate, collapses whitespace runs to a single space and trims the result.
func (c *TextCleaner) Clean(text string) string {
	cleaned := text
	for _, re := range c.patterns {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
}
