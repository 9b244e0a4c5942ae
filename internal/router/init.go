package router

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Lucas-Nascimentto/projeto-fan/config"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/application"
	gcsinfra "github.com/Lucas-Nascimentto/projeto-fan/internal/infrastructure/gcs"
	pginfra "github.com/Lucas-Nascimentto/projeto-fan/internal/infrastructure/postgres"
	handlers "github.com/Lucas-Nascimentto/projeto-fan/internal/interface/http"
	"github.com/Lucas-Nascimentto/projeto-fan/internal/router/modules"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/helpers"
)

// Deps carries every externally constructed client the modules need.
// All of it is built in main and passed down; no package-level state.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Pub    *helpers.RabbitPublisher
}

// InitModules builds repositories, services and handlers from Deps and
// registers every feature module with the router registry. Called once
// during startup.
func InitModules(r *Registry, d Deps) {
	users := pginfra.NewUserRepository(d.Pool)
	donations := pginfra.NewDonationRepository(d.Pool)
	requests := pginfra.NewRequestRepository(d.Pool)

	var photos application.ObjectStore
	if d.GCS != nil && d.Cfg.GCSBucket != "" {
		photos = gcsinfra.NewPhotoStore(d.GCS, d.Cfg.GCSBucket)
	}

	profileSvc := application.NewProfileService(users, d.JWT, d.Redis, d.Logger)
	catalogSvc := application.NewCatalogService(donations, photos, d.Pub, d.Logger, d.ES, d.Cfg.ESDonationsIndex)
	ledgerSvc := application.NewLedgerService(requests, donations, users, d.Pub, d.Logger)

	userHandler := handlers.NewUserHandler(profileSvc, d.Logger, d.Cfg.CookieDomain, d.Cfg.CookieSecure)
	donationHandler := handlers.NewDonationHandler(catalogSvc, d.Logger)
	requestHandler := handlers.NewRequestHandler(ledgerSvc, d.Logger)

	r.Add(modules.NewUserModule(userHandler, d.JWT, d.Redis))
	r.Add(modules.NewDonationModule(donationHandler, d.JWT, d.Redis))
	r.Add(modules.NewRequestModule(requestHandler, d.JWT, d.Redis))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}
}
