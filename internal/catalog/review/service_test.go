// Copyright (c) 2026 BookWise. All rights reserved.

package review_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amitkr8158/bookwise/internal/catalog/review"
	"github.com/amitkr8158/bookwise/internal/platform/apperr"
)

// memoryRepository is an in-memory Repository that mirrors the storage
// filtering semantics so moderation behavior can be tested end to end.
type memoryRepository struct {
	reviews []*review.Review
}

func (m *memoryRepository) ListVisible(_ context.Context, bookID string, onlyTop bool) ([]*review.Review, error) {
	var out []*review.Review
	for _, r := range m.reviews {
		if r.BookID != bookID || !r.IsVisible {
			continue
		}
		if onlyTop && !r.IsTop {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryRepository) ListModeration(_ context.Context, f review.ModerationFilter, limit, offset int) ([]*review.Review, int, error) {
	var out []*review.Review
	for _, r := range m.reviews {
		if f.BookID != "" && r.BookID != f.BookID {
			continue
		}
		if f.Visible != nil && r.IsVisible != *f.Visible {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memoryRepository) GetReview(_ context.Context, id string) (*review.Review, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperr.NotFound("Review")
}

func (m *memoryRepository) CreateReview(_ context.Context, r *review.Review) error {
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memoryRepository) SetVisibility(ctx context.Context, id string, visible bool) error {
	r, err := m.GetReview(ctx, id)
	if err != nil {
		return err
	}
	r.IsVisible = visible
	return nil
}

func (m *memoryRepository) SetTop(ctx context.Context, id string, top bool) error {
	r, err := m.GetReview(ctx, id)
	if err != nil {
		return err
	}
	r.IsTop = top
	return nil
}

func (m *memoryRepository) DeleteReview(_ context.Context, id string) error {
	for i, r := range m.reviews {
		if r.ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Review")
}

func (m *memoryRepository) Summary(_ context.Context, bookID string) (*review.RatingSummary, error) {
	summary := &review.RatingSummary{BookID: bookID}
	sum := 0
	for _, r := range m.reviews {
		if r.BookID == bookID && r.IsVisible {
			sum += r.Rating
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(sum) / float64(summary.Count)
	}
	return summary, nil
}

func newTestService(repo *memoryRepository) *review.Service {
	return review.NewService(repo, slog.Default())
}

const testBookID = "0198a6a2-0000-7000-8000-000000000001"

func submit(t *testing.T, service *review.Service, rating int) *review.Review {
	t.Helper()

	r := &review.Review{
		BookID:       testBookID,
		ReviewerName: "Asha",
		Rating:       rating,
		Comment:      "Sharp, practical summary.",
	}
	require.NoError(t, service.SubmitReview(context.Background(), "user-1", r))
	return r
}

/*
TestService_SubmitReview verifies that new submissions always start visible
and never top-flagged, regardless of what the client sends.
*/
func TestService_SubmitReview(t *testing.T) {
	service := newTestService(&memoryRepository{})

	r := &review.Review{
		BookID:       testBookID,
		ReviewerName: "Asha",
		Rating:       5,
		Comment:      "Excellent.",
		IsVisible:    false, // client cannot pre-moderate
		IsTop:        true,  // client cannot self-promote
	}
	require.NoError(t, service.SubmitReview(context.Background(), "user-1", r))

	assert.True(t, r.IsVisible)
	assert.False(t, r.IsTop)
	assert.Equal(t, "user-1", r.UserID)
	assert.NotEmpty(t, r.ID)
}

/*
TestService_SubmitReview_Validation covers rating bounds and required fields.
*/
func TestService_SubmitReview_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*review.Review)
	}{
		{"rating_zero", func(r *review.Review) { r.Rating = 0 }},
		{"rating_six", func(r *review.Review) { r.Rating = 6 }},
		{"missing_book", func(r *review.Review) { r.BookID = "" }},
		{"bad_book_id", func(r *review.Review) { r.BookID = "not-a-uuid" }},
		{"missing_name", func(r *review.Review) { r.ReviewerName = "" }},
		{"missing_comment", func(r *review.Review) { r.Comment = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&memoryRepository{})

			r := &review.Review{
				BookID:       testBookID,
				ReviewerName: "Asha",
				Rating:       4,
				Comment:      "Good.",
			}
			tt.mutate(r)

			err := service.SubmitReview(context.Background(), "user-1", r)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_Moderation exercises the visibility boundary: the top tab is a
subset of the all tab, and hiding a review removes it from both at once.
*/
func TestService_Moderation(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	first := submit(t, service, 5)
	second := submit(t, service, 3)

	// Promote the first review to the top tab.
	_, err := service.SetTop(ctx, first.ID, true)
	require.NoError(t, err)

	all, err := service.ListForBook(ctx, testBookID, review.TabAll)
	require.NoError(t, err)
	top, err := service.ListForBook(ctx, testBookID, review.TabTop)
	require.NoError(t, err)

	assert.Len(t, all, 2)
	require.Len(t, top, 1)
	assert.Equal(t, first.ID, top[0].ID)

	// Hiding the promoted review removes it from both tabs even though the
	// top flag itself is untouched.
	hidden, err := service.SetVisibility(ctx, first.ID, false)
	require.NoError(t, err)
	assert.True(t, hidden.IsTop)
	assert.False(t, hidden.IsVisible)

	all, err = service.ListForBook(ctx, testBookID, review.TabAll)
	require.NoError(t, err)
	top, err = service.ListForBook(ctx, testBookID, review.TabTop)
	require.NoError(t, err)

	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Empty(t, top)

	// Restoring visibility brings it straight back to the top tab.
	_, err = service.SetVisibility(ctx, first.ID, true)
	require.NoError(t, err)

	top, err = service.ListForBook(ctx, testBookID, review.TabTop)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

/*
TestService_Summary checks that hidden reviews are excluded from the rating
aggregate.
*/
func TestService_Summary(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	submit(t, service, 5)
	low := submit(t, service, 1)

	_, err := service.SetVisibility(ctx, low.ID, false)
	require.NoError(t, err)

	summary, err := service.Summary(ctx, testBookID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, 5.0, summary.Average)
}
