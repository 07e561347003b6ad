package service

import "testing"

func TestNextRevision(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "A"},
		{"A", "B"},
		{"C", "D"},
		{"Y", "Z"},
		{"Z", "AA"},
		{"AA", "AB"},
		{"AZ", "BA"},
		{"ZZ", "AAA"},
	}
	for _, c := range cases {
		if got := nextRevision(c.in); got != c.want {
			t.Errorf("nextRevision(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
