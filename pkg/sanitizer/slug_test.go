package sanitizer

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and trim",
			input: "  Acme-Weekly  ",
			want:  "acme-weekly",
		},
		{
			name:  "spaces become hyphens",
			input: "acme weekly digest",
			want:  "acme-weekly-digest",
		},
		{
			name:  "strip invalid characters",
			input: "acme_weekly!",
			want:  "acmeweekly",
		},
		{
			name:  "collapse hyphen runs",
			input: "acme---weekly",
			want:  "acme-weekly",
		},
		{
			name:  "trim leading and trailing hyphens",
			input: "-acme-weekly-",
			want:  "acme-weekly",
		},
		{
			name:  "only invalid characters",
			input: "!!@@",
			want:  "",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSlug(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
