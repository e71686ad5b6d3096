package utils

import "testing"

func TestToNumberWithDefault(t *testing.T) {
	cases := []struct {
		name string
		in   string
		def  int
		want int
	}{
		{"empty falls back", "", 5, 5},
		{"valid number wins", "12", 5, 12},
		{"malformed falls back", "abc", 5, 5},
		{"negative passes through", "-3", 5, -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToNumberWithDefault(tc.in, tc.def); got != tc.want {
				t.Errorf("ToNumberWithDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
			}
		})
	}
}
