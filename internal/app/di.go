// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/credvault/internal/config"
	credentialsHTTP "github.com/allisson/credvault/internal/credentials/http"
	credentialsRepository "github.com/allisson/credvault/internal/credentials/repository"
	credentialsUseCase "github.com/allisson/credvault/internal/credentials/usecase"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
	"github.com/allisson/credvault/internal/database"
	"github.com/allisson/credvault/internal/http"
	"github.com/allisson/credvault/internal/metrics"
	oauthDomain "github.com/allisson/credvault/internal/oauth/domain"
	oauthHTTP "github.com/allisson/credvault/internal/oauth/http"
	oauthUseCase "github.com/allisson/credvault/internal/oauth/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Crypto
	encryptor cryptoService.Encryptor

	// Repositories
	credentialRepo credentialsUseCase.CredentialRepository

	// Use Cases
	credentialUseCase credentialsUseCase.CredentialUseCase
	oauthUseCase      oauthUseCase.OAuthUseCase

	// OAuth support
	oauthRegistry   *oauthDomain.Registry
	oauthStateStore *oauthUseCase.MemoryStateStore

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	encryptorInit         sync.Once
	credentialRepoInit    sync.Once
	credentialUseCaseInit sync.Once
	oauthRegistryInit     sync.Once
	oauthStateStoreInit   sync.Once
	oauthUseCaseInit      sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		txManager, err := c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = txManager
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Encryptor returns the authenticated encryption service.
func (c *Container) Encryptor() cryptoService.Encryptor {
	c.encryptorInit.Do(func() {
		c.encryptor = cryptoService.NewAESGCM(cryptoService.NewEnvKeyResolver())
	})
	return c.encryptor
}

// CredentialRepository returns the credential repository instance.
func (c *Container) CredentialRepository() (credentialsUseCase.CredentialRepository, error) {
	c.credentialRepoInit.Do(func() {
		repo, err := c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
			return
		}
		c.credentialRepo = repo
	})
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential use case instance.
func (c *Container) CredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		useCase, err := c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		c.credentialUseCase = useCase
	})
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// OAuthRegistry returns the parsed OAuth provider registry.
func (c *Container) OAuthRegistry() (*oauthDomain.Registry, error) {
	c.oauthRegistryInit.Do(func() {
		registry, err := oauthDomain.ParseRegistry(c.config.OAuthProviders)
		if err != nil {
			c.initErrors["oauthRegistry"] = err
			return
		}
		c.oauthRegistry = registry
	})
	if storedErr, exists := c.initErrors["oauthRegistry"]; exists {
		return nil, storedErr
	}
	return c.oauthRegistry, nil
}

// OAuthStateStore returns the in-memory OAuth state store.
func (c *Container) OAuthStateStore() *oauthUseCase.MemoryStateStore {
	c.oauthStateStoreInit.Do(func() {
		c.oauthStateStore = oauthUseCase.NewMemoryStateStore(c.config.OAuthStateTTL)
	})
	return c.oauthStateStore
}

// OAuthUseCase returns the OAuth use case instance.
func (c *Container) OAuthUseCase() (oauthUseCase.OAuthUseCase, error) {
	c.oauthUseCaseInit.Do(func() {
		useCase, err := c.initOAuthUseCase()
		if err != nil {
			c.initErrors["oauthUseCase"] = err
			return
		}
		c.oauthUseCase = useCase
	})
	if storedErr, exists := c.initErrors["oauthUseCase"]; exists {
		return nil, storedErr
	}
	return c.oauthUseCase, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider.
// Returns nil if metrics are disabled in the configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// Returns a no-op implementation if metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		businessMetrics, err := c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server instance.
// Returns nil if metrics are disabled in the configuration.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		server, err := c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = server
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Stop the OAuth state store sweeper if initialized
	if c.oauthStateStore != nil {
		c.oauthStateStore.Close()
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Close database connection if initialized
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initCredentialRepository creates the credential repository instance.
func (c *Container) initCredentialRepository() (credentialsUseCase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return credentialsRepository.NewMySQLCredentialRepository(db), nil
	case "postgres":
		return credentialsRepository.NewPostgreSQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCredentialUseCase creates the credential use case with all its dependencies.
func (c *Container) initCredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}

	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	useCase := credentialsUseCase.NewCredentialUseCase(txManager, credentialRepo, c.Encryptor())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
	}

	return credentialsUseCase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initOAuthUseCase creates the OAuth use case with all its dependencies.
func (c *Container) initOAuthUseCase() (oauthUseCase.OAuthUseCase, error) {
	registry, err := c.OAuthRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth registry for oauth use case: %w", err)
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for oauth use case: %w", err)
	}

	useCase := oauthUseCase.NewOAuthUseCase(
		registry,
		c.OAuthStateStore(),
		oauthUseCase.NewExchanger(c.config.OAuthRedirectBaseURL),
		credentialUseCase,
		c.config.OAuthRedirectBaseURL,
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for oauth use case: %w", err)
	}

	return oauthUseCase.NewOAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential use case for http server: %w", err)
	}

	oauthUC, err := c.OAuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		c.config,
		credentialsHTTP.NewCredentialHandler(credentialUseCase, logger),
		oauthHTTP.NewOAuthHandler(oauthUC, logger),
		metricsProvider,
	)

	return server, nil
}

// initMetricsServer creates the metrics HTTP server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
