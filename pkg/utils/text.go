package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"strings"
	"unicode/utf8"
)

// CleanToValidUTF8 drops invalid byte sequences.
func CleanToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}

// SafeText removes NUL bytes (rejected by PostgreSQL text columns) and invalid UTF-8.
func SafeText(s string) string {
	return strings.ReplaceAll(CleanToValidUTF8(s), "\x00", "")
}

// UniqueStrings returns values without duplicates, keeping first occurrence order.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Round rounds v to the given number of decimal places, ties to even.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}

// HashString returns the hex md5 of s, used as a compact cache key.
func HashString(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
