package payments

import (
	"strings"
	"testing"
)

func validMetadata() CheckoutMetadata {
	return CheckoutMetadata{
		SponsorName:     "Widgets Inc",
		SponsorEmail:    "ads@widgets.test",
		WebsiteURL:      "https://widgets.test",
		AdCopy:          "Try Widgets today.",
		Date:            "2026-09-14",
		SlotTypeID:      "65a0b1c2d3e4f5a6b7c8d9e1",
		CreatorSlug:     "acme-weekly",
		CreativeFileURL: "https://storage.test/creative.png",
		SlotID:          "65a0b1c2d3e4f5a6b7c8d9e0",
		CreatorID:       "7c9e6679-7425-40de-944b-e07fc1f90ae7",
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	original := validMetadata()

	parsed, err := ParseMetadata(original.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *parsed != original {
		t.Errorf("round trip changed the metadata:\n got %+v\nwant %+v", *parsed, original)
	}
}

func TestMetadataOptionalCreative(t *testing.T) {
	m := validMetadata()
	m.CreativeFileURL = ""

	parsed, err := ParseMetadata(m.ToMap())
	if err != nil {
		t.Fatalf("creative file URL is optional, got error: %v", err)
	}
	if parsed.CreativeFileURL != "" {
		t.Errorf("expected empty creative URL, got %q", parsed.CreativeFileURL)
	}
}

func TestMetadataMissingRequiredField(t *testing.T) {
	raw := validMetadata().ToMap()
	delete(raw, "sponsor_email")

	_, err := ParseMetadata(raw)
	if err == nil {
		t.Fatal("expected error for missing sponsor_email")
	}
	if !strings.Contains(err.Error(), "sponsor_email") {
		t.Errorf("error should name the missing field, got: %v", err)
	}
}

func TestMetadataNil(t *testing.T) {
	if _, err := ParseMetadata(nil); err == nil {
		t.Fatal("expected error for nil metadata")
	}
}

func TestMetadataBadDate(t *testing.T) {
	m := validMetadata()
	m.Date = "14/09/2026"

	if _, err := ParseMetadata(m.ToMap()); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestMetadataBadSlotID(t *testing.T) {
	m := validMetadata()
	m.SlotID = "zzzz"

	if _, err := ParseMetadata(m.ToMap()); err == nil {
		t.Fatal("expected error for malformed slot id")
	}
}

func TestMetadataBadCreatorID(t *testing.T) {
	m := validMetadata()
	m.CreatorID = "not-a-uuid"

	if _, err := ParseMetadata(m.ToMap()); err == nil {
		t.Fatal("expected error for malformed creator id")
	}
}

func TestAmountCents(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{250, 25000},
		{99.99, 9999},
		{0.1, 10},
		{19.5, 1950},
	}
	for _, tc := range cases {
		if got := AmountCents(tc.price); got != tc.want {
			t.Errorf("AmountCents(%v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}
