package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keaton678/research-hub/domain"
	"github.com/keaton678/research-hub/internal/infrastructure/notifications"
)

// FeedbackServiceImpl handles feedback submission and the admin review
// surface.
type FeedbackServiceImpl struct {
	feedbackRepo domain.FeedbackRepository
	userRepo     domain.UserRepository
	mailer       domain.Mailer
	adminEmails  []string
	logger       *slog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	feedbackRepo domain.FeedbackRepository,
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	adminEmails []string,
	logger *slog.Logger,
) *FeedbackServiceImpl {
	return &FeedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		adminEmails:  adminEmails,
		logger:       logger,
	}
}

func validFeedbackType(t string) bool {
	for _, v := range domain.FeedbackTypes {
		if v == t {
			return true
		}
	}
	return false
}

func validFeedbackStatus(s string) bool {
	for _, v := range domain.FeedbackStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Submit stores a feedback entry and notifies the first configured admin.
// Signed-in submitters get their account identity attached; anonymous
// ones must supply email and name. A notification failure is reported to
// the caller along with the stored feedback ID so the entry is not lost.
func (s *FeedbackServiceImpl) Submit(ctx context.Context, fb *domain.Feedback) error {
	if fb.Type == "" {
		fb.Type = "general"
	}
	if !validFeedbackType(fb.Type) {
		return fmt.Errorf("%w: unknown feedback type %q", domain.ErrValidation, fb.Type)
	}

	if fb.UserID != nil {
		user, err := s.userRepo.FindByID(ctx, *fb.UserID)
		if err != nil {
			return err
		}
		fb.Email = user.Email
		fb.Name = user.FullName
	} else if strings.TrimSpace(fb.Email) == "" || strings.TrimSpace(fb.Name) == "" {
		return fmt.Errorf("%w: anonymous feedback requires email and name", domain.ErrValidation)
	}

	fb.Status = "new"
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	if len(s.adminEmails) > 0 {
		msg := notifications.FeedbackNotificationEmail(s.adminEmails[0], fb)
		if err := s.mailer.Send(ctx, msg); err != nil {
			return fmt.Errorf("failed to notify admin: %w", err)
		}
	}
	return nil
}

// List returns a filtered page of feedback entries with the total count.
func (s *FeedbackServiceImpl) List(ctx context.Context, filter domain.FeedbackFilter) ([]domain.Feedback, int64, error) {
	if filter.Status != "" && !validFeedbackStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}
	if filter.Type != "" && !validFeedbackType(filter.Type) {
		return nil, 0, fmt.Errorf("%w: unknown feedback type %q", domain.ErrValidation, filter.Type)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.feedbackRepo.List(ctx, filter)
}

// UpdateStatus moves a feedback entry through the review workflow.
func (s *FeedbackServiceImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !validFeedbackStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return s.feedbackRepo.UpdateStatus(ctx, id, status)
}

// Stats returns the admin feedback overview for the trailing days.
func (s *FeedbackServiceImpl) Stats(ctx context.Context, days int) (*domain.FeedbackStats, error) {
	if days <= 0 {
		days = 30
	}
	return s.feedbackRepo.Stats(ctx, days)
}
