package http

import (
	"net/http/httptest"
	"testing"
)

func TestExtractDateRange(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "valid range",
			query:     "?start=2026-09-01&end=2026-09-30",
			wantStart: "2026-09-01",
			wantEnd:   "2026-09-30",
		},
		{
			name:      "single day",
			query:     "?start=2026-09-14&end=2026-09-14",
			wantStart: "2026-09-14",
			wantEnd:   "2026-09-14",
		},
		{
			name:    "missing start",
			query:   "?end=2026-09-30",
			wantErr: true,
		},
		{
			name:    "missing end",
			query:   "?start=2026-09-01",
			wantErr: true,
		},
		{
			name:    "malformed start",
			query:   "?start=01-09-2026&end=2026-09-30",
			wantErr: true,
		},
		{
			name:    "end before start",
			query:   "?start=2026-09-30&end=2026-09-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/slots"+tt.query, nil)

			start, end, err := ExtractDateRange(r)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("got (%s, %s), want (%s, %s)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
