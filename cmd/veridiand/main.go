package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/veridian-dev/veridian/internal/account"
	"github.com/veridian-dev/veridian/internal/api"
	"github.com/veridian-dev/veridian/internal/config"
	"github.com/veridian-dev/veridian/internal/logging"
	"github.com/veridian-dev/veridian/internal/server"
	"github.com/veridian-dev/veridian/internal/vault"
	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)
	logger.Info("starting veridian daemon")

	emailValidator := validate.NewEmailValidator(cfg.Validator.EmailLimits())
	passwords := cfg.Validator.PasswordPolicy()
	records := normalize.New()
	accounts := account.NewService(account.NewRegistry(), emailValidator, account.DefaultLimits())

	// TCP line-protocol listener
	router := server.NewRouter(emailValidator, passwords, records, accounts)

	if !cfg.TCP.DisableTLS {
		logger.Info("generating self-signed certificate for internal TLS")
		cert, err := vault.GenerateSelfSignedCert()
		if err != nil {
			logger.Error("tls certificate generation failed", "err", err)
			os.Exit(1)
		}
		router.SetCertificate(cert)
	} else {
		logger.Info("tls disabled for tcp listener")
	}

	// HTTP API
	handler := &api.Handler{
		Emails:    emailValidator,
		Passwords: passwords,
		Records:   records,
		Accounts:  accounts,
	}
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http api listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			os.Exit(1)
		}
	}()

	go func() {
		logger.Info("tcp protocol listening", "port", cfg.TCP.Port)
		if err := router.Listen(fmt.Sprintf("%d", cfg.TCP.Port)); err != nil {
			logger.Error("tcp server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")
	router.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", "err", err)
	}
	logger.Info("exited cleanly")
}
