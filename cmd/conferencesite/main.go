// @title Conference site API
// @version 1.0
// @description Read-only JSON API of the conference website.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conferencesite/config"
	_ "conferencesite/docs"
	"conferencesite/internal/adapters/email"
	"conferencesite/internal/adapters/mailchimp"
	delivery "conferencesite/internal/delivery/http"
	"conferencesite/internal/delivery/http/controllers"
	"conferencesite/internal/delivery/http/middleware"
	"conferencesite/internal/repository/filestore"
	"conferencesite/internal/repository/jsonfs"
	"conferencesite/internal/services"
	"conferencesite/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if cfg.Mailchimp.APIKey == "" {
		logger.Warn("MAILCHIMP_API_KEY is not set; registrations will fail")
	}

	renderer, err := views.NewRenderer(views.Options{
		SiteTitle: cfg.Site.Title,
		Months:    cfg.Site.Messages.Months,
		StaticDir: cfg.StaticDir,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	content := jsonfs.NewStore(cfg.ContentDir)
	attachments := filestore.NewAttachmentStore(cfg.PresentationsDir, "/pres")
	builder := services.NewScheduleBuilder(attachments, time.Now)

	subscriber := mailchimp.NewClient(mailchimp.Config{
		APIKey:  cfg.Mailchimp.APIKey,
		BaseURL: cfg.Mailchimp.BaseURL,
	}, &http.Client{Timeout: cfg.Mailchimp.Timeout})
	registration := services.NewRegistrationService(subscriber, emailService, logger, services.RegistrationConfig{
		Timeout:        cfg.Mailchimp.Timeout,
		MaxRetries:     cfg.Mailchimp.MaxRetries,
		RetryBaseDelay: cfg.Mailchimp.RetryBaseDelay,
		Messages: services.RegistrationMessages{
			AlreadyRegistered: cfg.Site.Messages.AlreadyRegistered,
			UnexpectedError:   cfg.Site.Messages.UnexpectedError,
		},
		BaseURL: cfg.Site.BaseURL,
	})

	var limiter *middleware.RateLimiter
	if cfg.RegistrationRateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RegistrationRateLimit)
	}

	handler := delivery.NewRouter(logger, delivery.Controllers{
		Home: controllers.NewHomeController(logger, renderer, content, services.NewHomeService(nil, time.Now)),
		Event: controllers.NewEventController(logger, renderer, content, builder, registration, controllers.EventControllerConfig{
			ThanksMessage:      cfg.Site.Messages.RegistrationThanks,
			InvalidFormMessage: cfg.Site.Messages.InvalidForm,
			SecureCookies:      cfg.Production(),
			Now:                time.Now,
		}),
		Page:   controllers.NewPageController(logger, renderer, filestore.NewPageStore(cfg.PagesDir)),
		API:    controllers.NewAPIController(logger, content, builder),
		Errors: controllers.NewErrorPages(logger, renderer),
	}, delivery.RouterConfig{
		StaticDir:        cfg.StaticDir,
		PresentationsDir: cfg.PresentationsDir,
		AllowedOrigins:   cfg.AllowedOrigins,
		CSRF: middleware.CSRFConfig{
			Key:            cfg.CSRFKey,
			Secure:         cfg.Production(),
			TrustedOrigins: cfg.AllowedOrigins,
		},
		RegistrationLimiter: limiter,
		TrustProxy:          cfg.TrustProxy,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second + cfg.Mailchimp.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if limiter != nil {
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					limiter.Cleanup(10 * time.Minute)
				}
			}
		}()
	}

	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "env", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
