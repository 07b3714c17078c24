package util

import (
	"strings"
	"unicode"
)

// Slugify lowercases, strips everything but letters/digits/hyphens, and
// collapses whitespace and underscores into single hyphens. Empty input
// degrades to "item" so slug columns never end up blank.
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if r > unicode.MaxASCII {
				continue
			}
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "item"
	}
	return slug
}

// UniqueSlug appends -2, -3, ... until taken reports the candidate as free.
func UniqueSlug(base string, taken func(slug string) bool) string {
	slug := Slugify(base)
	if !taken(slug) {
		return slug
	}
	for counter := 2; ; counter++ {
		candidate := slug + "-" + itoa(counter)
		if !taken(candidate) {
			return candidate
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}
