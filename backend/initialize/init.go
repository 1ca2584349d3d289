package initialize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"wine-cellar/backend/app/controllers"
	"wine-cellar/backend/app/db"
	jwtutil "wine-cellar/backend/app/jwt"
	"wine-cellar/backend/app/middleware"
	"wine-cellar/backend/app/repo"
	"wine-cellar/backend/app/services"
	"wine-cellar/backend/app/session"
	"wine-cellar/backend/app/views"
	"wine-cellar/backend/config"
	"wine-cellar/backend/router"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// App owns every process-wide resource. Build opens them, Close releases
// them; nothing lives in package globals.
type App struct {
	Cfg      config.Config
	Log      zerolog.Logger
	DB       *gorm.DB
	Sessions *session.Manager
	Views    *views.Renderer
	Router   http.Handler
	Users    *services.UserService
	Wines    *services.WineService

	watcher *views.Watcher
}

func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	app := &App{Cfg: *cfg, Log: log}
	ok := false
	defer func() {
		if !ok {
			_ = app.Close()
		}
	}()

	// Connect DB
	gdb, err := db.Connect(db.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	app.DB = gdb

	// Migrate
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Sessions
	var store session.Store
	if cfg.Redis.URL != "" {
		rs, err := session.NewRedisStore(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = rs
		log.Info().Msg("sessions stored in redis")
	} else {
		store = session.NewMemoryStore()
		log.Warn().Msg("no redis url configured, sessions kept in memory")
	}
	if cfg.Session.Secret == config.DefaultSessionSecret {
		log.Warn().Msg("using the default session secret, set SESSION_SECRET")
	}
	app.Sessions = &session.Manager{
		Store:  store,
		Signer: &jwtutil.Signer{Secret: []byte(cfg.Session.Secret), Issuer: "wine-cellar", TTL: cfg.Session.TTL},
		Cookie: cfg.Session.Cookie,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	}

	// Views
	templates := views.Templates()
	if cfg.Views.Dir != "" {
		templates = os.DirFS(cfg.Views.Dir)
	}
	renderer, err := views.New(templates)
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	app.Views = renderer
	if cfg.Views.Dir != "" && cfg.Views.Reload {
		w, err := views.Watch(cfg.Views.Dir, renderer, log)
		if err != nil {
			return nil, fmt.Errorf("watch views: %w", err)
		}
		app.watcher = w
	}

	// Services
	app.Users = services.NewUserService(repo.NewUserRepository(gdb))
	app.Wines = services.NewWineService(repo.NewWineRepository(gdb))
	if cfg.Admin.Username != "" {
		if err := app.Users.EnsureUser(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			// non-critical
			log.Warn().Err(err).Str("username", cfg.Admin.Username).Msg("bootstrap user not created")
		}
	}

	// Controllers
	httpCtrl := controllers.NewHTTPController(func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	authCtrl := controllers.NewAuthController(app.Users, app.Sessions, renderer, log)
	invCtrl := controllers.NewInventoryController(app.Wines, renderer, log)
	mw := &middleware.Auth{Sessions: app.Sessions, Users: app.Users, Log: log}

	// Router
	app.Router = router.NewRouter(httpCtrl, authCtrl, invCtrl, mw, router.Options{
		Log:     log,
		Metrics: cfg.Metrics.Enabled,
		Static:  views.Static(),
	})

	ok = true
	return app, nil
}

// Close releases the watcher, the session store and the DB pool.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
		a.watcher = nil
	}
	if a.Sessions != nil {
		errs = append(errs, a.Sessions.Store.Close())
		a.Sessions = nil
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
		a.DB = nil
	}
	return errors.Join(errs...)
}
