// Copyright (c) 2026 BookWise. All rights reserved.

package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/amitkr8158/bookwise/internal/platform/mailer"
	"github.com/amitkr8158/bookwise/internal/platform/validate"
	"github.com/amitkr8158/bookwise/pkg/uuidv7"
)

// RecipientLister supplies the subscribed email addresses for each send.
type RecipientLister interface {
	ListSubscribedEmails(ctx context.Context) ([]string, error)
}

type Service struct {
	quotes     QuoteRepository
	settings   SettingsStore
	daily      DailyCache
	recipients RecipientLister
	sender     mailer.Sender // nil when SMTP is not configured
	logger     *slog.Logger
}

func NewService(quotes QuoteRepository, settings SettingsStore, daily DailyCache, recipients RecipientLister, sender mailer.Sender, logger *slog.Logger) *Service {
	return &Service{
		quotes:     quotes,
		settings:   settings,
		daily:      daily,
		recipients: recipients,
		sender:     sender,
		logger:     logger,
	}
}

// # Quotes

func (service *Service) ListQuotes(ctx context.Context) ([]*Quote, error) {
	return service.quotes.ListQuotes(ctx)
}

func (service *Service) GetQuote(ctx context.Context, id string) (*Quote, error) {
	return service.quotes.GetQuote(ctx, id)
}

func (service *Service) CreateQuote(ctx context.Context, q *Quote) error {
	if err := validateQuote(q); err != nil {
		return err
	}

	q.ID = uuidv7.New()

	if err := service.quotes.CreateQuote(ctx, q); err != nil {
		return err
	}

	service.logger.Info("quote_created", slog.String("quote_id", q.ID))
	return nil
}

func (service *Service) UpdateQuote(ctx context.Context, id string, q *Quote) error {
	q.ID = id
	if err := validateQuote(q); err != nil {
		return err
	}

	return service.quotes.UpdateQuote(ctx, q)
}

func (service *Service) DeleteQuote(ctx context.Context, id string) error {
	return service.quotes.DeleteQuote(ctx, id)
}

// DailyQuote returns the quote of the day, picking and pinning one on the
// first request of each date.
//
// The pin is per calendar date in server-local time; every reader sees the
// same quote until midnight.
func (service *Service) DailyQuote(ctx context.Context) (*Quote, error) {
	date := time.Now().Format("2006-01-02")

	if cached, err := service.daily.GetDaily(ctx, date); err == nil {
		return cached, nil
	}

	picked, err := service.quotes.RandomQuote(ctx)
	if err != nil {
		return nil, err
	}

	if err := service.daily.SetDaily(ctx, date, picked); err != nil {
		// Cache failure degrades to a fresh pick per request, never an error.
		service.logger.Warn("daily_quote_pin_failed", slog.Any("error", err))
	}

	return picked, nil
}

// # Settings

func (service *Service) GetSettings(ctx context.Context) (Settings, error) {
	return service.settings.Load(ctx)
}

func (service *Service) SaveSettings(ctx context.Context, s Settings) error {
	validator := &validate.Validator{}
	validator.Required(FieldSubject, s.Subject).MaxLen(FieldSubject, s.Subject, 200)
	validator.Required(FieldTemplate, s.Template)
	validator.Custom(FieldSendTime, !validSendTime(s.SendTime), "Must be a 24h time like 08:00")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.settings.Save(ctx, s); err != nil {
		return err
	}

	service.logger.Info("digest_settings_saved",
		slog.Bool("enabled", s.Enabled),
		slog.String("send_time", s.SendTime),
	)
	return nil
}

// # Scheduler

// RunScheduler fires the digest at the configured time each day until ctx is
// cancelled. Settings are re-read before every send, so time or template
// changes apply without a restart.
func (service *Service) RunScheduler(ctx context.Context) {
	for {
		settings, err := service.settings.Load(ctx)
		if err != nil {
			service.logger.Error("digest_settings_load_failed", slog.Any("error", err))
			settings = DefaultSettings()
		}

		wait := untilNextSend(time.Now(), settings.SendTime)

		select {
		case <-ctx.Done():
			service.logger.Info("digest_scheduler_stopped")
			return
		case <-time.After(wait):
		}

		// Re-load: the admin may have flipped the switch while we slept.
		settings, err = service.settings.Load(ctx)
		if err != nil || !settings.Enabled {
			continue
		}

		if err := service.sendDigest(ctx, settings); err != nil {
			// Failed sends are not retried; tomorrow's run covers it.
			service.logger.Error("digest_send_failed", slog.Any("error", err))
		}
	}
}

// SendNow triggers an immediate digest send (admin testing hook).
func (service *Service) SendNow(ctx context.Context) error {
	settings, err := service.settings.Load(ctx)
	if err != nil {
		return err
	}
	return service.sendDigest(ctx, settings)
}

func (service *Service) sendDigest(ctx context.Context, settings Settings) error {
	if service.sender == nil {
		service.logger.Warn("digest_skipped_no_mailer")
		return nil
	}

	quote, err := service.DailyQuote(ctx)
	if err != nil {
		return err
	}

	recipients, err := service.recipients.ListSubscribedEmails(ctx)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		service.logger.Info("digest_skipped_no_recipients")
		return nil
	}

	body := RenderTemplate(settings.Template, quote)
	if err := service.sender.Send(recipients, settings.Subject, body); err != nil {
		return err
	}

	service.logger.Info("digest_sent", slog.Int("recipients", len(recipients)))
	return nil
}

// untilNextSend computes the wait until the next daily occurrence of sendTime.
// Malformed times fall back to the default send time.
func untilNextSend(now time.Time, sendTime string) time.Duration {
	parsed, err := time.Parse("15:04", sendTime)
	if err != nil {
		parsed, _ = time.Parse("15:04", DefaultSettings().SendTime)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}

func validSendTime(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}

func validateQuote(q *Quote) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, q.Text).MaxLen(FieldText, q.Text, 1000)
	validator.Required(FieldAuthor, q.Author).MaxLen(FieldAuthor, q.Author, 200)
	validator.MaxLen(FieldSource, q.Source, 200)
	return validator.Err()
}
