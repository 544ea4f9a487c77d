package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/yardbook/yardbook/pkg/admin"
	"github.com/yardbook/yardbook/pkg/billing"
	"github.com/yardbook/yardbook/pkg/config"
	"github.com/yardbook/yardbook/pkg/email"
	"github.com/yardbook/yardbook/pkg/httpserver"
	"github.com/yardbook/yardbook/pkg/logger"
	"github.com/yardbook/yardbook/pkg/mongo"
	"github.com/yardbook/yardbook/pkg/redis"
	"github.com/yardbook/yardbook/pkg/storage"
	"github.com/yardbook/yardbook/pkg/tenant"
	"github.com/yardbook/yardbook/pkg/tenantstore"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"APP_NAME" envDefault:"yardbook"`
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), appCfg, log); err != nil {
		log.Error("service exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var (
		mongoCfg  mongo.Config
		redisCfg  redis.Config
		tenantCfg tenant.Config
		httpCfg   httpserver.Config
	)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&tenantCfg)
	config.MustLoad(&httpCfg)

	mongoClient, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(context.Background()) //nolint:errcheck
	db := mongoClient.Database(mongoCfg.DatabaseName)

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	store := tenantstore.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	cache := tenantstore.NewRedisCache(redisClient)

	billingSvc, err := buildBilling(appCfg, store, cache, log)
	if err != nil {
		return err
	}
	adminSvc, err := buildAdmin(ctx, store, cache, log)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log,
		mongo.Healthcheck(mongoClient),
		redis.Healthcheck(redisClient),
	))

	// Webhooks and the operator console sit outside tenant scope; the
	// console lives under the first configured admin prefix.
	r.Post("/webhooks/billing", billingSvc.Webhook())
	adminPrefix := "/admin"
	if len(tenantCfg.AdminPathPrefixes) > 0 {
		adminPrefix = tenantCfg.AdminPathPrefixes[0]
	}
	r.Mount(adminPrefix, adminSvc.Router())

	resolve := tenant.MiddlewareFromConfig(tenantCfg, store,
		tenant.WithCache(cache),
		tenant.WithLogger(log),
	)
	r.Group(func(r chi.Router) {
		r.Use(resolve, tenant.RequireTenant(nil))
		r.Get("/", handleWorkspaceHome)
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// buildBilling wires the payment provider webhook pipeline. The email
// notifier is optional: without Postmark tokens, status changes are
// only logged (or written to disk in development).
func buildBilling(appCfg appConfig, store *tenantstore.Store, cache *tenantstore.RedisCache, log *slog.Logger) (*billing.Service, error) {
	var paddleCfg billing.PaddleConfig
	config.MustLoad(&paddleCfg)

	provider, err := billing.NewPaddleProvider(paddleCfg)
	if err != nil {
		return nil, err
	}

	opts := []billing.ServiceOption{
		billing.WithCacheInvalidator(cache),
		billing.WithLogger(log),
	}

	// Missing sender identity disables status notifications entirely.
	var emailCfg email.Config
	var sender email.Sender
	if cfgErr := config.Load(&emailCfg); cfgErr == nil {
		if emailCfg.PostmarkServerToken != "" {
			sender, err = email.NewPostmarkSender(emailCfg)
			if err != nil {
				return nil, err
			}
		} else if appCfg.Environment != "production" {
			sender = email.NewDevSender(emailCfg.DevDir)
		}
	}
	if sender != nil {
		opsEmail := emailCfg.OpsEmail
		if opsEmail == "" {
			opsEmail = emailCfg.SupportEmail
		}
		notifier, err := email.NewStatusNotifier(sender, opsEmail)
		if err != nil {
			return nil, err
		}
		opts = append(opts, billing.WithNotifier(notifier))
	}

	return billing.NewService(provider, store, opts...), nil
}

// buildAdmin wires the operator console. Object storage is optional;
// without it, logo uploads return 501 and everything else works.
func buildAdmin(ctx context.Context, store *tenantstore.Store, cache *tenantstore.RedisCache, log *slog.Logger) (*admin.Service, error) {
	opts := []admin.ServiceOption{
		admin.WithCacheInvalidator(cache),
		admin.WithLogger(log),
	}

	if os.Getenv("S3_BUCKET") != "" {
		var s3Cfg storage.Config
		config.MustLoad(&s3Cfg)
		st, err := storage.NewS3Storage(ctx, s3Cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, admin.WithStorage(st))
	}

	return admin.NewService(store, opts...), nil
}

// handleWorkspaceHome is a placeholder tenant-scoped endpoint proving
// resolution end to end; the workspace application mounts here.
func handleWorkspaceHome(w http.ResponseWriter, r *http.Request) {
	t := tenant.MustFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"tenant":"` + t.Subdomain + `","name":` + jsonString(t.Name) + `}`))
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
