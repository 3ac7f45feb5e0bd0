package service

import (
	"context"
	"errors"

	"slotbook/internal/auth"
	creatorserrors "slotbook/internal/creators/errors"
	"slotbook/internal/creators/repository"
	"slotbook/internal/creators/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
)

type CreatorService interface {
	SignUp(ctx context.Context, req *model.SignupRequest) (*model.Creator, error)
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error
	GetProfile(ctx context.Context, identity auth.Identity) (*model.Creator, error)
	UpdateProfile(ctx context.Context, identity auth.Identity, updates *model.CreatorUpdate) (*model.Creator, error)
	GetPublicProfile(ctx context.Context, slug string) (*model.Creator, error)
}

type creatorService struct {
	repo      repository.CreatorRepository
	provider  auth.Provider
	validator *validator.CreatorValidator
	cfg       *config.Config
}

func NewCreatorService(
	repo repository.CreatorRepository,
	provider auth.Provider,
	validator *validator.CreatorValidator,
	cfg *config.Config,
) CreatorService {
	return &creatorService{
		repo:      repo,
		provider:  provider,
		validator: validator,
		cfg:       cfg,
	}
}

// SignUp registers the account with the auth provider and then inserts
// the profile row keyed by the provider's user id. The slug is checked
// before touching the provider so a taken slug never burns an auth
// account; the unique index backstops the check under races.
func (s *creatorService) SignUp(ctx context.Context, req *model.SignupRequest) (*model.Creator, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.NewsletterName = sanitizer.NormalizeName(req.NewsletterName)
	req.Slug = sanitizer.NormalizeSlug(req.Slug)

	if err := s.validator.ValidateSignup(req); err != nil {
		s.cfg.Log.Warn("Signup validation failed", "error", err)
		return nil, apperrors.Validation("Invalid signup input", map[string]any{"error": err.Error()})
	}

	taken, err := s.repo.SlugExists(ctx, req.Slug, "")
	if err != nil {
		return nil, apperrors.Internal("Failed to check slug availability", err)
	}
	if taken {
		return nil, apperrors.Conflict("This slug is already taken")
	}

	identity, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		s.cfg.Log.Error("Auth provider signup failed", "email", req.Email, "error", err)
		return nil, apperrors.Upstream("auth provider", err)
	}

	creator := &model.Creator{
		ID:             identity.ID,
		Email:          req.Email,
		NewsletterName: req.NewsletterName,
		Slug:           req.Slug,
		Timezone:       req.Timezone,
	}

	if err := s.repo.Create(ctx, creator); err != nil {
		if errors.Is(err, creatorserrors.ErrSlugTaken) {
			return nil, apperrors.Conflict("This slug is already taken")
		}
		return nil, apperrors.Internal("Failed to create creator profile", err)
	}

	s.cfg.Log.Info("Creator signed up",
		"creator_id", creator.ID,
		"slug", creator.Slug,
	)
	return creator, nil
}

func (s *creatorService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateResetPassword(req); err != nil {
		return apperrors.Validation("Invalid reset input", map[string]any{"error": err.Error()})
	}

	if err := s.provider.ResetPassword(ctx, req.Email, s.cfg.BaseURL+"/reset-password"); err != nil {
		s.cfg.Log.Error("Password reset request failed", "error", err)
		return apperrors.Upstream("auth provider", err)
	}

	s.cfg.Log.Info("Password reset email requested", "email", req.Email)
	return nil
}

func (s *creatorService) GetProfile(ctx context.Context, identity auth.Identity) (*model.Creator, error) {
	creator, err := s.repo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, creatorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Creator profile")
		}
		return nil, apperrors.Internal("Failed to retrieve creator profile", err)
	}
	return creator, nil
}

func (s *creatorService) UpdateProfile(ctx context.Context, identity auth.Identity, updates *model.CreatorUpdate) (*model.Creator, error) {
	updates.NewsletterName = sanitizer.NormalizeName(updates.NewsletterName)
	updates.Slug = sanitizer.NormalizeSlug(updates.Slug)

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Profile update validation failed", "creator_id", identity.ID, "error", err)
		return nil, apperrors.Validation("Invalid profile input", map[string]any{"error": err.Error()})
	}

	taken, err := s.repo.SlugExists(ctx, updates.Slug, identity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to check slug availability", err)
	}
	if taken {
		return nil, apperrors.Conflict("This slug is already taken")
	}

	if err := s.repo.UpdateProfile(ctx, identity.ID, updates); err != nil {
		if errors.Is(err, creatorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Creator profile")
		}
		if errors.Is(err, creatorserrors.ErrSlugTaken) {
			return nil, apperrors.Conflict("This slug is already taken")
		}
		return nil, apperrors.Internal("Failed to update creator profile", err)
	}

	creator, err := s.repo.FindByID(ctx, identity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to reload creator profile", err)
	}

	s.cfg.Log.Info("Creator profile updated", "creator_id", identity.ID, "slug", creator.Slug)
	return creator, nil
}

func (s *creatorService) GetPublicProfile(ctx context.Context, slug string) (*model.Creator, error) {
	slug = sanitizer.NormalizeSlug(slug)
	if slug == "" {
		return nil, apperrors.InvalidInput("Slug cannot be empty")
	}

	creator, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, creatorserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Creator")
		}
		return nil, apperrors.Internal("Failed to retrieve creator", err)
	}
	return creator, nil
}
