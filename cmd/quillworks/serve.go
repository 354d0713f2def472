package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quillworks/internal/db"
	"quillworks/internal/identity"
	"quillworks/internal/mailer"
	"quillworks/internal/server"
	"quillworks/internal/storage"
	"quillworks/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)
	sesClient := sesv2.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	jwkCache, err := jwk.NewCache(context.Background(), httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(context.Background(), jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register identity provider jwk with cache: %w", err)
	}

	srv := server.New(config, logger, server.Deps{
		Directory: identity.NewCognitoDirectory(cognitoClient, config.CognitoUserPoolID),
		Mailer:    mailer.NewSESMailer(sesClient, config.EmailFromAddress),
		Objects: storage.NewS3Store(
			s3Client,
			config.StorageBucketName,
			time.Duration(config.DownloadURLTTLSec)*time.Second,
		),

		Quotes:        store.NewQuoteRequestRepository(pool),
		Deliverables:  store.NewDeliverableRepository(pool),
		Notifications: store.NewNotificationRepository(pool),
		Roles:         store.NewUserRoleRepository(pool),
		Profiles:      store.NewProfileRepository(pool),
		Orders:        store.NewOrderRepository(pool),
		Tickets:       store.NewSupportTicketRepository(pool),
		Samples:       store.NewSamplePaperRepository(pool),
		Audits:        store.NewAuditLogRepository(pool),

		DB: pool,

		JWKSCache: jwkCache,
		JWKSURL:   jwksURL,
	})

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
