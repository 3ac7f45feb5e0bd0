package validator

import (
	"testing"

	"slotbook/pkg/logger"
	"slotbook/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validSignup() *model.SignupRequest {
	return &model.SignupRequest{
		Email:          "jane@acme-weekly.test",
		Password:       "hunter2hunter2",
		NewsletterName: "Acme Weekly",
		Slug:           "acme-weekly",
		Timezone:       "America/New_York",
	}
}

func TestValidateSignup_SlugRules(t *testing.T) {
	v := NewCreatorValidator(testLogger())

	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{
			name:    "simple slug",
			slug:    "acme-weekly",
			wantErr: false,
		},
		{
			name:    "single word",
			slug:    "acme",
			wantErr: false,
		},
		{
			name:    "numbers allowed",
			slug:    "acme-2026",
			wantErr: false,
		},
		{
			name:    "uppercase rejected",
			slug:    "Acme-Weekly",
			wantErr: true,
		},
		{
			name:    "leading hyphen rejected",
			slug:    "-acme",
			wantErr: true,
		},
		{
			name:    "trailing hyphen rejected",
			slug:    "acme-",
			wantErr: true,
		},
		{
			name:    "double hyphen rejected",
			slug:    "acme--weekly",
			wantErr: true,
		},
		{
			name:    "underscore rejected",
			slug:    "acme_weekly",
			wantErr: true,
		},
		{
			name:    "empty rejected",
			slug:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			req.Slug = tt.slug

			err := v.ValidateSignup(req)
			if tt.wantErr && err == nil {
				t.Errorf("slug %q should be rejected", tt.slug)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("slug %q should be accepted, got %v", tt.slug, err)
			}
		})
	}
}

func TestValidateSignup_Timezone(t *testing.T) {
	v := NewCreatorValidator(testLogger())

	req := validSignup()
	req.Timezone = "Not/AZone"
	if err := v.ValidateSignup(req); err == nil {
		t.Error("unknown timezone should be rejected")
	}

	req.Timezone = "Europe/Berlin"
	if err := v.ValidateSignup(req); err != nil {
		t.Errorf("valid timezone rejected: %v", err)
	}
}

func TestValidateSignup_TranslatedMessages(t *testing.T) {
	v := NewCreatorValidator(testLogger())

	req := validSignup()
	req.Password = "short"
	req.Email = "nope"

	err := v.ValidateSignup(req)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(verrs), verrs)
	}

	fields := map[string]bool{}
	for _, verr := range verrs {
		fields[verr.Field] = true
		if verr.Message == "" {
			t.Errorf("field %s has no message", verr.Field)
		}
	}
	if !fields["Email"] || !fields["Password"] {
		t.Errorf("expected Email and Password errors, got %v", verrs)
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewCreatorValidator(testLogger())

	updates := &model.CreatorUpdate{
		NewsletterName: "Acme Weekly",
		Slug:           "acme-weekly",
		Timezone:       "America/New_York",
	}
	if err := v.ValidateUpdate(updates); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}

	updates.NewsletterName = "A"
	if err := v.ValidateUpdate(updates); err == nil {
		t.Error("one-character newsletter name should be rejected")
	}
}
