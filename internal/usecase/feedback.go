package usecase

import (
	"context"
	"fmt"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
)

// FeedbackUseCase defines the interface for collecting user feedback.
type FeedbackUseCase interface {
	// Submit validates and stores feedback, returning the stored record.
	Submit(ctx context.Context, feedback domain.Feedback) (*domain.Feedback, error)
}

type feedbackUseCase struct {
	repo domain.FeedbackRepository
}

// NewFeedbackUseCase creates a FeedbackUseCase that stores feedback in repo.
func NewFeedbackUseCase(repo domain.FeedbackRepository) FeedbackUseCase {
	return &feedbackUseCase{repo: repo}
}

// Submit implements FeedbackUseCase.Submit.
// Storage failures are returned wrapped in domain.ErrFeedbackNotSaved.
func (uc *feedbackUseCase) Submit(ctx context.Context, feedback domain.Feedback) (*domain.Feedback, error) {
	feedback.Normalize()
	if err := feedback.Validate(); err != nil {
		return nil, err
	}

	feedback.ID = 0
	if err := uc.repo.Save(ctx, &feedback); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("Failed to save feedback")
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedbackNotSaved, err)
	}

	logger.FromContext(ctx).Info().
		Int64("feedback_id", feedback.ID).
		Int("rating", feedback.Rating).
		Msg("Feedback saved")

	return &feedback, nil
}

// Ensure feedbackUseCase implements FeedbackUseCase at compile time.
var _ FeedbackUseCase = (*feedbackUseCase)(nil)
