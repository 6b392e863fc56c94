package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"conferencesite/internal/datetime"
	"conferencesite/internal/domain"
)

const (
	defaultSubscribeTimeout = 5 * time.Second
	defaultRetryBaseDelay   = 200 * time.Millisecond

	// DefaultAlreadyRegisteredMessage is used when no localized text is configured.
	// {email} is replaced with the submitted address.
	DefaultAlreadyRegisteredMessage = "{email} is already registered"
	DefaultUnexpectedErrorMessage   = "An unexpected error occurred"
)

// RegistrationMessages holds the user-facing texts of a failed submission.
type RegistrationMessages struct {
	AlreadyRegistered string
	UnexpectedError   string
}

// RegistrationConfig tunes the subscribe call. Zero values fall back to defaults;
// MaxRetries 0 means a single attempt.
type RegistrationConfig struct {
	Timeout        time.Duration
	MaxRetries     uint64
	RetryBaseDelay time.Duration
	Messages       RegistrationMessages
	// BaseURL is used to link the event page from the confirmation email.
	BaseURL string
}

type registrationService struct {
	subscriber   domain.MailingListSubscriber
	emailService domain.EmailService
	logger       *slog.Logger
	cfg          RegistrationConfig
}

// NewRegistrationService returns a RegistrationService. emailService may be nil to
// skip confirmation emails.
func NewRegistrationService(subscriber domain.MailingListSubscriber, emailService domain.EmailService, logger *slog.Logger, cfg RegistrationConfig) domain.RegistrationService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultSubscribeTimeout
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}
	if cfg.Messages.AlreadyRegistered == "" {
		cfg.Messages.AlreadyRegistered = DefaultAlreadyRegisteredMessage
	}
	if cfg.Messages.UnexpectedError == "" {
		cfg.Messages.UnexpectedError = DefaultUnexpectedErrorMessage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationService{
		subscriber:   subscriber,
		emailService: emailService,
		logger:       logger,
		cfg:          cfg,
	}
}

// IsRegistrationOpen reports whether open <= now < close. A missing or force-closed
// registration block is always closed.
func (s *registrationService) IsRegistrationOpen(event *domain.Event, now time.Time) (bool, error) {
	if event == nil || event.Registration == nil || event.Registration.ForceClosed() {
		return false, nil
	}
	reg := event.Registration
	opens, err := datetime.ParseDateTime(reg.OpenDate, reg.OpenTime, event.Timezone)
	if err != nil {
		return false, fmt.Errorf("event %s registration open: %w", event.ID, err)
	}
	closes, err := datetime.ParseDateTime(reg.CloseDate, reg.CloseTime, event.Timezone)
	if err != nil {
		return false, fmt.Errorf("event %s registration close: %w", event.ID, err)
	}
	return !now.Before(opens) && now.Before(closes), nil
}

func (s *registrationService) Submit(ctx context.Context, submission *domain.RegistrationSubmission, listID string) domain.RegistrationResult {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req := domain.SubscribeRequest{
		Email:       submission.Email,
		DoubleOptIn: false,
		MergeFields: submission.MergeFields(),
	}
	err := s.subscribe(ctx, listID, req)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "registration subscribed", "list_id", listID)
		return domain.RegistrationResult{Success: true}
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return domain.RegistrationResult{
			Success: false,
			Message: strings.ReplaceAll(s.cfg.Messages.AlreadyRegistered, "{email}", submission.Email),
		}
	default:
		s.logger.ErrorContext(ctx, "mailing list subscribe failed", "list_id", listID, "err", err)
		return domain.RegistrationResult{Success: false, Message: s.cfg.Messages.UnexpectedError}
	}
}

// subscribe retries transient failures with exponential backoff, bounded by
// MaxRetries and by the context deadline.
func (s *registrationService) subscribe(ctx context.Context, listID string, req domain.SubscribeRequest) error {
	backoff := retry.WithMaxRetries(s.cfg.MaxRetries, retry.NewExponential(s.cfg.RetryBaseDelay))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := s.subscriber.Subscribe(ctx, listID, req)
		if err != nil && errors.Is(err, domain.ErrMailingListUnavailable) {
			s.logger.WarnContext(ctx, "mailing list unavailable", "list_id", listID, "attempt", attempt, "err", err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *registrationService) Register(ctx context.Context, event *domain.Event, submission *domain.RegistrationSubmission, now time.Time) (domain.RegistrationResult, error) {
	open, err := s.IsRegistrationOpen(event, now)
	if err != nil {
		return domain.RegistrationResult{}, err
	}
	if !open {
		return domain.RegistrationResult{}, domain.ErrRegistrationClosed
	}

	result := s.Submit(ctx, submission, event.Registration.MailchimpListID)
	if result.Success && s.emailService != nil {
		data := &domain.RegistrationConfirmationEmailData{
			Email:      submission.Email,
			FirstName:  submission.FirstName,
			EventTitle: event.Title,
			EventURL:   strings.TrimSuffix(s.cfg.BaseURL, "/") + "/events/" + event.ID + "/",
		}
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "registration confirmation email failed", "event_id", event.ID, "err", err)
		}
	}
	return result, nil
}
