package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/config"
	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/internal/container"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
	"github.com/oksasatya/dream-journal-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/dream-journal-api/internal/infrastructure/postgres"
	"github.com/oksasatya/dream-journal-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/dream-journal-api/internal/interface/http"
	"github.com/oksasatya/dream-journal-api/internal/interface/middleware"
	"github.com/oksasatya/dream-journal-api/internal/router/modules"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

// Repositories is the storage behind every module.
type Repositories struct {
	Users          repo.UserRepository
	Stories        repo.StoryRepository
	Games          repo.GameRepository
	SleepSessions  repo.SleepSessionRepository
	JournalEntries repo.JournalEntryRepository
	GameResults    repo.GameResultRepository
}

// Deps carries everything the modules are built from. Nil optional fields
// (StoryIndex, Mail, Activity, Gatherer) disable the matching feature.
type Deps struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Redis      *redis.Client
	JWT        helpers.TokenIssuer
	Hasher     helpers.PasswordHasher
	Repos      Repositories
	StoryIndex application.StoryIndexer
	Mail       helpers.Publisher
	Activity   helpers.Publisher
	Gatherer   prometheus.Gatherer
}

func postgresRepositories() Repositories {
	pool := container.GetPGPool()
	return Repositories{
		Users:          pginfra.NewUserRepository(pool),
		Stories:        pginfra.NewStoryRepository(pool),
		Games:          pginfra.NewGameRepository(pool),
		SleepSessions:  pginfra.NewSleepSessionRepository(pool),
		JournalEntries: pginfra.NewJournalEntryRepository(pool),
		GameResults:    pginfra.NewGameResultRepository(pool),
	}
}

// MemoryRepositories returns process-local repositories.
func MemoryRepositories() Repositories {
	return Repositories{
		Users:          memory.NewUserRepository(),
		Stories:        memory.NewStoryRepository(),
		Games:          memory.NewGameRepository(),
		SleepSessions:  memory.NewSleepSessionRepository(),
		JournalEntries: memory.NewJournalEntryRepository(),
		GameResults:    memory.NewGameResultRepository(),
	}
}

func depsFromContainer() Deps {
	cfg := container.GetConfig()
	d := Deps{
		Config: cfg,
		Logger: container.GetLogger(),
		Redis:  container.GetRedis(),
		JWT:    container.GetJWT(),
		Hasher: helpers.NewBcryptHasher(cfg.BcryptCost),
	}
	if cfg.InMemory() {
		d.Repos = MemoryRepositories()
	} else {
		d.Repos = postgresRepositories()
	}
	// typed nils must not reach the interface fields
	if es := container.GetES(); es != nil {
		d.StoryIndex = search.NewStoryIndex(es, cfg.ESStoriesIndex)
	}
	if p := container.GetMailPub(); p != nil {
		d.Mail = p
	}
	if p := container.GetActivityPub(); p != nil {
		d.Activity = p
	}
	if r := container.GetRegistry(); r != nil {
		d.Gatherer = r
	}
	return d
}

// InitModules initializes all application modules from the container and
// registers them with the router registry. Call once during startup.
func InitModules(r *Registry) {
	BuildModules(r, depsFromContainer())
}

// BuildModules wires services, handlers and modules from d.
func BuildModules(r *Registry, d Deps) {
	cfg, logger := d.Config, d.Logger

	activity := application.NewActivityRecorder(d.Activity, logger)
	users := application.NewService(d.Repos.Users, d.Hasher, d.JWT, logger, d.Mail)
	sessions := application.NewSleepSessionService(d.Repos.SleepSessions, logger)
	entries := application.NewJournalEntryService(d.Repos.JournalEntries, sessions.OwnedService, activity, logger)
	stories := application.NewStoryService(d.Repos.Stories, entries.OwnedService, d.StoryIndex, activity, logger)
	games := application.NewGameService(d.Repos.Games, entries.OwnedService, logger)
	results := application.NewGameResultService(d.Repos.GameResults, games.OwnedService, activity, logger)

	guard := modules.Guard{JWT: d.JWT, Redis: d.Redis}

	var allow middleware.AllowFunc
	if !cfg.IsProduction() {
		allow = middleware.AllowPrivateIP()
	}

	r.Add(modules.HealthModule{})
	r.Add(&modules.UserModule{
		Handler:       handlers.NewUserHandler(users, logger, cfg.CookieDomain, cfg.SecureCookies()),
		Guard:         guard,
		LoginLimit:    cfg.LoginRateLimit,
		RegisterLimit: cfg.RegisterRateLimit,
		Allow:         allow,
	})
	r.Add(&modules.StoryModule{Handler: handlers.NewStoryHandler(stories, logger), Guard: guard})
	r.Add(&modules.GameModule{Handler: handlers.NewGameHandler(games, logger), Guard: guard})
	r.Add(&modules.SleepSessionModule{Handler: handlers.NewSleepSessionHandler(sessions, logger), Guard: guard})
	r.Add(&modules.JournalEntryModule{Handler: handlers.NewJournalEntryHandler(entries, logger), Guard: guard})
	r.Add(&modules.GameResultModule{Handler: handlers.NewGameResultHandler(results, logger), Guard: guard})

	if cfg.MetricsEnabled && d.Gatherer != nil {
		r.AddRoot(&modules.MetricsModule{Gatherer: d.Gatherer, Redis: d.Redis})
	}
}
