package util

import (
	"strings"
	"unicode"
)

// DownloadFileName builds a download name like "cover-letter-acme-corp.txt" from a prefix,
// an employer or job context, and an extension. The context is lower-cased and runs of
// whitespace become single hyphens.
func DownloadFileName(prefix, context, ext string) string {
	slug := Slugify(context)
	name := strings.TrimSpace(prefix)
	if slug != "" {
		if name != "" {
			name += "-"
		}
		name += slug
	}
	if name == "" {
		name = "document"
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// Slugify lower-cases s, maps whitespace runs to "-", and drops path separators.
func Slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(s)), unicode.IsSpace)
	slug := strings.Join(fields, "-")
	slug = strings.NewReplacer("/", "", "\\", "", "..", "").Replace(slug)
	return slug
}
