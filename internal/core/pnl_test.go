package core

import "testing"

func TestParsePnL(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"100", "100", true},
		{"-50.25", "-50.25", true},
		{"0", "0", true},
		{"12,5", "12.5", true},
		{" 3.14 ", "3.14", true},
		{"", "", false},
		{"n/a", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		d, ok := ParsePnL(tc.in)
		if ok != tc.ok {
			t.Fatalf("%q: expected ok=%v, got %v", tc.in, tc.ok, ok)
		}
		if ok && d.String() != tc.out {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, d.String())
		}
	}
}
