package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	got := StripHTML(` <b>Grand</b> Ballroom &lt;script&gt;alert(1)&lt;/script&gt; `)
	if got != "Grand Ballroom alert(1)" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestLineCollapsesBreaks(t *testing.T) {
	got := Line("Wedding\r\nBcc: attacker@example.com")
	if got != "Wedding Bcc: attacker@example.com" {
		t.Fatalf("unexpected result %q", got)
	}
}
