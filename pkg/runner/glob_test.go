package runner

import "testing"

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel     string
		pattern string
		want    bool
	}{
		{"vendor", "vendor/**", true},
		{"vendor/pkg/doc.xml", "vendor/**", true},
		{"src/vendor/doc.xml", "vendor/**", false},
		{"src/vendor/doc.xml", "**/vendor/**", true},
		{"docs/guide.xml", "*.xml", true},
		{"docs/guide.xml", "docs/*.xml", true},
		{"docs/deep/guide.xml", "docs/*.xml", false},
		{"docs/deep/guide.xml", "docs/**/*.xml", true},
		{"generated.xml", "generated.*", true},
		{"pom.xml", "[", false},
	}

	for _, tt := range tests {
		if got := matchGlob(tt.rel, tt.pattern); got != tt.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.rel, tt.pattern, got, tt.want)
		}
	}
}
