package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := map[string]string{
		"(201) 555-0123":   "+12015550123",
		"  201.555.0123 ":  "+12015550123",
		"":                 "",
		"call me":          "call me",
		"+44 20 7946 0958": "+442079460958",
		"555-0123":         "555-0123",
	}

	for input, want := range cases {
		if got := NormalizeE164(input); got != want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", input, got, want)
		}
	}
}
