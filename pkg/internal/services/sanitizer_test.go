package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeContentBody(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{"keeps formatting", "<p>hi <strong>there</strong></p>", "<p>hi <strong>there</strong></p>"},
		{"strips script", "<p>hi</p><script>bad()</script>", "<p>hi</p>"},
		{"strips event handlers", `<p onclick="bad()">hi</p>`, "<p>hi</p>"},
		{"strips style element", "<style>p{display:none}</style><em>ok</em>", "<em>ok</em>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, SanitizeContentBody(tc.in))
		})
	}
}

func TestStripContentTags(t *testing.T) {
	assert.Equal(t, "hi there", StripContentTags("<p>hi <strong>there</strong></p>"))
}
