package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDescriptionHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "whitespace only",
			in:   "  \n\t\n  ",
			want: "",
		},
		{
			name: "single paragraph",
			in:   "Doors open at seven.",
			want: "<p>Doors open at seven.</p>",
		},
		{
			name: "line break inside paragraph and blank line between",
			in:   "A\nB\n\nC",
			want: "<p>A<br/>B</p><p>C</p>",
		},
		{
			name: "bullet list",
			in:   "- X\n- Y",
			want: "<ul><li>X</li><li>Y</li></ul>",
		},
		{
			name: "asterisk and unicode bullets",
			in:   "* First\n• Second",
			want: "<ul><li>First</li><li>Second</li></ul>",
		},
		{
			name: "mixed bullet and text stays a paragraph",
			in:   "Bring:\n- ID\n- Ticket",
			want: "<p>Bring:<br/>- ID<br/>- Ticket</p>",
		},
		{
			name: "paragraph then list",
			in:   "What to expect:\n\n- Live music\n- Snacks",
			want: "<p>What to expect:</p><ul><li>Live music</li><li>Snacks</li></ul>",
		},
		{
			name: "html is escaped",
			in:   "Tickets <$20 & up>",
			want: "<p>Tickets &lt;$20 &amp; up&gt;</p>",
		},
		{
			name: "windows line endings",
			in:   "A\r\nB\r\n\r\nC",
			want: "<p>A<br/>B</p><p>C</p>",
		},
		{
			name: "indented bullets",
			in:   "  - X\n\t- Y",
			want: "<ul><li>X</li><li>Y</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDescriptionHTML(tt.in))
		})
	}
}
