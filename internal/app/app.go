package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "todolist/docs"
	"todolist/internal/config"
	"todolist/internal/handlers"
	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/middleware"
	"todolist/internal/pdf"
	"todolist/internal/repositories"
	"todolist/internal/resources"
	"todolist/internal/routes"
	"todolist/internal/services"
)

// Server holds everything built at startup. Close releases it in reverse
// order.
type Server struct {
	cfg       *config.Config
	log       *logger.Dispatcher
	store     *repositories.Store
	appLogger *services.AppLoggerService
	router    *gin.Engine
}

// Options replaces the SMTP transport and metrics registry, mostly in tests.
type Options struct {
	Mailer   services.Sender
	Registry *prometheus.Registry
}

// New wires repositories, services and handlers on top of an open store and
// switches the dispatcher to the persistent logger.
func New(cfg *config.Config, store *repositories.Store, dispatcher *logger.Dispatcher, console logger.Sink, opts Options) (*Server, error) {
	res, err := resources.New(cfg.Files.RootDir)
	if err != nil {
		return nil, err
	}
	catalog, err := i18n.Load(res.I18nDir(), cfg.I18n.FallbackLanguage)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	activateHTML, err := res.AssetFile(filepath.Join("mail", "activate_account.html"))
	if err != nil {
		return nil, fmt.Errorf("load mail template: %w", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(store.DB)
	otpRepo := repositories.NewOtpRepository(store.DB)
	taskRepo := repositories.NewTodoTaskRepository(store.DB)
	logRepo := repositories.NewLogRepository(store.DB)

	// === Services ===
	sender := opts.Mailer
	if sender == nil {
		sender = services.NewDialer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUser, cfg.Email.SMTPPassword)
	}
	mailService, err := services.NewMailService(sender, cfg.Email.FromEmail, cfg.APIEntryPoint(), catalog, activateHTML)
	if err != nil {
		return nil, err
	}
	tokens := services.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	otpService := services.NewOtpService(otpRepo, userRepo, mailService, services.OtpSettings{
		Length:    cfg.OTP.Length,
		ExpiresIn: cfg.OTP.ExpiresIn,
	}, dispatcher)
	userService := services.NewUserService(store, userRepo, otpService, cfg.Security.BcryptRounds, dispatcher)
	authService := services.NewAuthService(userRepo, tokens, dispatcher)
	pdfGen := pdf.NewDocumentGenerator(filepath.Join(res.AssetsDir(), "fonts", "DejaVuSans.ttf"))
	taskService := services.NewTodoTaskService(taskRepo, pdfGen, catalog, dispatcher)

	appLogger := services.NewAppLoggerService(logRepo, console, services.AppLoggerOptions{})
	dispatcher.Debug("[app] logger %s, replaying %d entries into the database sink", dispatcher.State(), dispatcher.Buffered())
	dispatcher.Resolve(appLogger)

	// === Handlers ===
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, catalog, dispatcher),
		Users:    handlers.NewUserHandler(userService, store, catalog, dispatcher),
		Otp:      handlers.NewOtpHandler(otpService, catalog, dispatcher),
		TodoTask: handlers.NewTodoTaskHandler(taskService, store, catalog, dispatcher),
		Files:    handlers.NewFileHandler(res, catalog, dispatcher),
	}
	guards := routes.Guards{
		JWT:   middleware.JWTGuard(tokens, userService),
		Admin: middleware.AdminGuard(catalog),
	}

	// === Gin ===
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics := middleware.NewMetrics(reg)

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		dispatcher.Error("[http] [%s %s] panic: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "statusCode": http.StatusInternalServerError})
	}))
	router.Use(middleware.CORS())
	router.Use(middleware.Language(catalog))
	router.Use(middleware.RequestLogger(dispatcher, metrics))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message":    fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
			"error":      "Not Found",
			"statusCode": http.StatusNotFound,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	routes.SetupRoutes(router, h, guards)

	return &Server{cfg: cfg, log: dispatcher, store: store, appLogger: appLogger, router: router}, nil
}

func (s *Server) Router() http.Handler { return s.router }

// Close flushes pending log rows, then closes the database.
func (s *Server) Close() error {
	s.appLogger.Close()
	return s.store.Close()
}

// bufferFromEnv reads LOG_BUFFER; unset or unparsable means true.
func bufferFromEnv() bool {
	v, ok := os.LookupEnv("LOG_BUFFER")
	if !ok {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err != nil || b
}

// Run starts the API and blocks until SIGINT or SIGTERM.
func Run() error {
	// The dispatcher exists before config so startup failures are logged.
	boot, err := logger.NewConsole(os.Getenv("NODE_ENV") == "production", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return err
	}
	defer boot.Sync() //nolint:errcheck
	dispatcher := logger.NewDispatcher(boot, bufferFromEnv())

	cfg, err := config.Load(config.DefaultConfigPath, config.DefaultEnvFile)
	if err != nil {
		dispatcher.Resolve(boot)
		dispatcher.Fatal("[app] load config: %v", err)
		return err
	}
	console, err := logger.NewConsole(cfg.IsProduction(), cfg.Log.Level)
	if err != nil {
		dispatcher.Resolve(boot)
		dispatcher.Fatal("[app] build logger: %v", err)
		return err
	}
	defer console.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher.Log("[app] connecting to database")
	store, err := repositories.Open(ctx, cfg.Database.DSN)
	if err != nil {
		dispatcher.Resolve(console)
		dispatcher.Fatal("[app] %v", err)
		return err
	}

	srv, err := New(cfg, store, dispatcher, console, Options{})
	if err != nil {
		dispatcher.Resolve(console)
		dispatcher.Fatal("[app] init server: %v", err)
		store.Close()
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		dispatcher.Log("[app] listening on %s (%s)", cfg.Addr(), cfg.APIEntryPoint())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		dispatcher.Log("[app] shutting down")
	case err = <-errCh:
		dispatcher.Error("[app] server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		dispatcher.Error("[app] http shutdown: %v", serr)
	}
	dispatcher.Resolve(console)
	if cerr := srv.Close(); cerr != nil {
		dispatcher.Error("[app] close: %v", cerr)
	}
	return err
}
