package services

import "github.com/microcosm-cc/bluemonday"

var (
	contentPolicy = bluemonday.UGCPolicy()
	textPolicy    = bluemonday.StrictPolicy()
)

// SanitizeContentBody strips script and style elements and every event
// handler attribute from externally supplied HTML, keeping the basic
// formatting tags a rendering layer expects.
func SanitizeContentBody(body string) string {
	return contentPolicy.Sanitize(body)
}

// StripContentTags reduces an HTML body to its text.
func StripContentTags(body string) string {
	return textPolicy.Sanitize(body)
}
