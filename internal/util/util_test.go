package util

import "testing"

func TestHideAPIKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ab", "ab"},
		{"abc", "a...c"},
		{"abcde", "ab...de"},
		{"abcdefghijkl", "abcd...ijkl"},
	}
	for _, tc := range cases {
		if got := HideAPIKey(tc.in); got != tc.want {
			t.Errorf("HideAPIKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
