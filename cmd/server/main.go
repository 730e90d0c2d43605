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

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dispatch/config"
	"dispatch/database"
	"dispatch/entities"
	"dispatch/logging"
	"dispatch/router"

	// Auth
	authCtrlImp "dispatch/pkg/auth/controllerImp"
	"dispatch/pkg/identity"
	"dispatch/pkg/middleware"

	// Schedule rules
	"dispatch/pkg/schedule"
	schedRepoImp "dispatch/pkg/schedule/repositoryImp"

	// Tasks + export
	exportCtrlImp "dispatch/pkg/export/controllerImp"
	taskCtrlImp "dispatch/pkg/task/controllerImp"
	taskRepoImp "dispatch/pkg/task/repositoryImp"
	taskSvcImp "dispatch/pkg/task/serviceImp"

	// Users
	userCtrlImp "dispatch/pkg/user/controllerImp"
	userRepoImp "dispatch/pkg/user/repositoryImp"
	userSvc "dispatch/pkg/user/service"
	userSvcImp "dispatch/pkg/user/serviceImp"

	// Work requests
	"dispatch/pkg/workrequest/document"
	wrCtrlImp "dispatch/pkg/workrequest/controllerImp"
	wrRepoImp "dispatch/pkg/workrequest/repositoryImp"
	wrSvcImp "dispatch/pkg/workrequest/serviceImp"

	// Notifications
	"dispatch/pkg/notification/mailer"
	notifCtrlImp "dispatch/pkg/notification/controllerImp"
	notifRepoImp "dispatch/pkg/notification/repositoryImp"
	notifSvcImp "dispatch/pkg/notification/serviceImp"

	// Health
	healthCtrlImp "dispatch/pkg/health/controllerImp"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dispatch-server",
		Short:         "Weekly dispatch schedule API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.Must(cfg.LogLevel, cfg.LogFormat)
			defer log.Sync() //nolint:errcheck

			db, err := database.Open(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			e, err := newServer(cfg, db, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				log.Info("listening", zap.String("port", cfg.Port))
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", zap.Error(err))
					stop()
				}
			}()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision the first administrator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logging.Must(cfg.LogLevel, cfg.LogFormat)
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			idp, err := newIdentity(cfg, db)
			if err != nil {
				return err
			}
			users := userSvcImp.New(userRepoImp.New(db), idp, log)
			u, err := users.Create(cmd.Context(), userSvc.NewUser{
				Email:    email,
				Password: password,
				FullName: name,
				Role:     entities.RoleAdmin,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.FullName, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&name, "name", "管理者", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newIdentity(cfg config.AppConfig, db *gorm.DB) (identity.Provider, error) {
	switch cfg.AuthProvider {
	case "", "local":
		return identity.NewLocal(db, cfg.JWTSecret, cfg.SessionTTL), nil
	case "remote":
		if cfg.AuthURL == "" || cfg.AuthAnonKey == "" || cfg.AuthServiceKey == "" {
			return nil, errors.New("AUTH_URL, AUTH_ANON_KEY and AUTH_SERVICE_KEY are required for AUTH_PROVIDER=remote")
		}
		return identity.NewRemote(cfg.AuthURL, cfg.AuthAnonKey, cfg.AuthServiceKey), nil
	}
	return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
}

// newServer wires every feature onto a fresh echo instance.
func newServer(cfg config.AppConfig, db *gorm.DB, log *zap.Logger) (*echo.Echo, error) {
	loc := cfg.Location()

	idp, err := newIdentity(cfg, db)
	if err != nil {
		return nil, err
	}
	sender, err := mailer.FromConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	// Users
	uRepo := userRepoImp.New(db)
	uSvc := userSvcImp.New(uRepo, idp, log)
	gate := middleware.NewGate(idp, uRepo, log)

	// Notifications
	nSvc := notifSvcImp.New(notifRepoImp.New(db), sender, cfg.NotificationEmails, loc, log)

	// Tasks
	tRepo := taskRepoImp.New(db)
	conflict := schedule.NewConflictValidator(schedRepoImp.New(db), loc, log).
		WithPolicy(schedule.OnValidationFetchError)
	tSvc := taskSvcImp.New(tRepo, conflict, nSvc, loc, log)

	// Work requests
	wrSvc := wrSvcImp.New(wrRepoImp.New(db), tRepo, document.NewRenderer(cfg.PDFFontPath, loc), log)

	hCtrl := healthCtrlImp.NewHealthCtrl(db, map[string]healthCtrlImp.Check{
		"mail": func(ctx context.Context) error { return mailer.Healthy(ctx, sender) },
	})

	return router.New(
		echo.New(),
		log,
		gate,
		authCtrlImp.NewAuthController(idp, log),
		taskCtrlImp.New(tSvc, loc, log),
		exportCtrlImp.New(tSvc, loc, log),
		userCtrlImp.New(uSvc, log),
		wrCtrlImp.New(wrSvc, log),
		notifCtrlImp.New(nSvc, log),
		hCtrl,
	), nil
}
