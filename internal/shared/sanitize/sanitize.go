// Package sanitize strips markup from user supplied text before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text removes every tag, used for titles, categories and comments.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// RichText keeps the safe formatting subset of user generated content.
func RichText(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}
