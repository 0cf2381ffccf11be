package html

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "visible text only",
			in:   `<html><body><p>This Agreement is made</p><p>between the parties.</p></body></html>`,
			want: "This Agreement is made between the parties.",
		},
		{
			name: "script and style dropped",
			in:   `<html><head><style>p{color:red}</style><script>alert(1)</script></head><body>Purchase Agreement</body></html>`,
			want: "Purchase Agreement",
		},
		{
			name: "nested whitespace collapsed",
			in:   "<div>\n  <span>5,000,000</span>\n  <span>shares</span>\n</div>",
			want: "5,000,000 shares",
		},
		{
			name: "unclosed tags recovered",
			in:   `<p>dated as of <b>May 16, 2022`,
			want: "dated as of May 16, 2022",
		},
		{
			name: "no visible text",
			in:   `<html><head><script>x()</script></head></html>`,
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractText([]byte(tc.in))
			if got != tc.want {
				t.Fatalf("ExtractText() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractText_FragmentWithoutWrapper(t *testing.T) {
	got := ExtractText([]byte("SECURITIES PURCHASE AGREEMENT dated May 16, 2022"))
	if !strings.Contains(got, "SECURITIES PURCHASE AGREEMENT") {
		t.Fatalf("ExtractText() = %q, want fragment text preserved", got)
	}
}
