package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"sales-crm/internal/auth"
	"sales-crm/internal/config"
	"sales-crm/internal/crm"
	"sales-crm/internal/database"
	"sales-crm/internal/handlers"
	"sales-crm/internal/logger"
	"sales-crm/internal/oidc"
	"sales-crm/internal/tokenstore"
	"sales-crm/internal/utils"
)

const StartupText = `
  ___  __ _| | ___  ___        ___ _ __ _ __ ___
 / __|/ _' | |/ _ \/ __|_____ / __| '__| '_ ' _ \
 \__ \ (_| | |  __/\__ \_____| (__| |  | | | | | |
 |___/\__,_|_|\___||___/      \___|_|  |_| |_| |_|
`

type Api struct {
	cfg         *config.Config
	log         logger.Logger
	db          *database.DBManager
	tokenStore  *tokenstore.BuntDBTokenStore
	router      *mux.Router
	authRouter  *mux.Router
	dashRouter  *mux.Router
	adminRouter *mux.Router
	handlers.CRMHandlers
}

func NewApi(cfg *config.Config, log logger.Logger) *Api {
	return &Api{cfg: cfg, log: log}
}

// Setup opens the stores, prepares authentication and registers every route.
func (a *Api) Setup(ctx context.Context) error {
	utils.SetLogger(a.log)
	utils.SetJWTSecret(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL)

	if err := a.SetupDatabases(ctx); err != nil {
		return err
	}
	a.SetupOIDC(ctx)

	verifier := a.credentialVerifier()
	store := a.CRMHandlers.Store
	loc := a.cfg.Location()
	a.CRMHandlers.Sessions = crm.NewRegistry(func() *crm.Service {
		return crm.NewService(store, verifier, a.log, crm.WithLocation(loc))
	}, crm.DefaultRefresh, a.log)
	a.CRMHandlers.Config = a.cfg
	a.CRMHandlers.Log = a.log

	a.router = mux.NewRouter()
	a.log.Info("Setting up routes")
	a.SetupAllRoutes()
	return nil
}

func (a *Api) SetupDatabases(ctx context.Context) error {
	a.log.Info("Setting up API databases")
	manager, err := database.NewDBManager(a.cfg.Database, a.log)
	if err != nil {
		return err
	}
	if err := manager.Connect(ctx); err != nil {
		return fmt.Errorf("cannot connect to database: %w", err)
	}
	a.db = manager
	if err := manager.ApplyMigrations(ctx); err != nil {
		return fmt.Errorf("cannot apply migrations: %w", err)
	}
	store, err := manager.Store()
	if err != nil {
		return err
	}

	a.log.Info("Setting up token storage")
	ts, err := manager.InitTokenStore(a.cfg.Auth.TokenStorePath)
	if err != nil {
		return fmt.Errorf("cannot initialize token storage: %w", err)
	}
	a.tokenStore = ts
	a.CRMHandlers.Store = store
	a.CRMHandlers.TokenStore = ts
	a.log.Info("DB setup complete")
	return nil
}

// SetupOIDC enables single sign-on when configured. A provider that cannot be
// reached leaves password login working.
func (a *Api) SetupOIDC(ctx context.Context) {
	if missing := utils.MissingOidcParams(a.cfg.OIDC); len(missing) > 0 {
		if a.cfg.OIDC.Enabled() {
			a.log.Warn("OIDC disabled, missing %v", missing)
		}
		return
	}
	a.log.Info("Setting Up OIDC")
	provider, err := oidc.NewProvider(ctx, a.cfg.OIDC)
	if err != nil {
		a.log.Warn("Cannot start OIDC functionality: %v", err)
		return
	}
	a.CRMHandlers.OIDC = provider
}

func (a *Api) credentialVerifier() auth.Verifier {
	if !a.cfg.Auth.VerifyPasswords {
		a.log.Warn("password verification is disabled, any password is accepted")
		return auth.NoCheckVerifier{}
	}
	return auth.NewBcryptVerifier(a.tokenStore)
}

// Handler is the complete HTTP surface including CORS and request logging.
func (a *Api) Handler() http.Handler {
	c := cors.AllowAll()
	if a.cfg.WebUIURL != "" {
		c = cors.New(cors.Options{
			AllowedOrigins:   []string{a.cfg.WebUIURL},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		})
	}
	return c.Handler(a.router)
}

func (a *Api) Start() {
	fmt.Print(StartupText, "\n")

	ctx := context.Background()
	if err := a.Setup(ctx); err != nil {
		a.log.Fatal("Cannot start API: %v", err)
	}

	killSignal := make(chan os.Signal, 1)
	signal.Notify(killSignal, os.Interrupt, syscall.SIGTERM)
	server := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Starting API at endpoint: %s (tls=%t)", server.Addr, a.cfg.TLSEnabled())
		var err error
		if a.cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(a.cfg.Server.CertFile, a.cfg.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Fatal("Cannot start API: %v", err)
		}
	}()

	<-killSignal
	a.log.Info("Received shutdown signal. Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Server shutdown failed: %v", err)
	}
	a.Stop()
}

func (a *Api) Stop() {
	a.log.Info("Graceful shutdown of services")
	if a.tokenStore != nil {
		if err := a.tokenStore.Close(); err != nil {
			a.log.Warn("Cannot close token storage: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Couldn't close database connection: %v", err)
		}
	}
	a.log.Info("API shutdown gracefully")
}
