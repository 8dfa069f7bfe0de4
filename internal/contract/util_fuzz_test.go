package contract

import "testing"

// FuzzParseWeightsString fuzzes the weights flag parser with random inputs.
func FuzzParseWeightsString(f *testing.F) {
	seeds := []string{
		"price:3,quality:7",
		"a:0.5",
		"",
		",,,",
		"name with spaces:1e3",
		"ratio:a:b:2",
		":",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		weights, err := ParseWeightsString(s)
		if err != nil {
			return
		}
		for name := range weights {
			if name == "" {
				t.Fatalf("empty criterion name parsed from %q", s)
			}
		}
	})
}
