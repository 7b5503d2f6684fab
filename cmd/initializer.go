package main

import (
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"tamirciBul/internal/config"
	"tamirciBul/internal/directory"
	"tamirciBul/internal/finder"
	"tamirciBul/internal/handlers"
	"tamirciBul/internal/models"
	"tamirciBul/internal/notify"
	"tamirciBul/internal/session"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	store  session.Store
	bus    *notify.Bus
	stream *notify.Stream
	finder *finder.Orchestrator

	searchHandler       *handlers.SearchHandler
	serviceHandler      *handlers.ServiceHandler
	sessionHandler      *handlers.SessionHandler
	reviewHandler       *handlers.ReviewHandler
	complaintHandler    *handlers.ComplaintHandler
	applicationHandler  *handlers.ApplicationHandler
	notificationHandler *handlers.NotificationHandler
}

// logPair adapts the stdlib logger pair to the Infof/Errorf interfaces the
// inner packages ask for.
type logPair struct {
	info *log.Logger
	err  *log.Logger
}

func (l logPair) Infof(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

func (l logPair) Errorf(format string, args ...interface{}) {
	l.err.Printf(format, args...)
}

func initializeApp(cfg config.Config, errorLog, infoLog *log.Logger) *application {
	logger := logPair{info: infoLog, err: errorLog}

	// Session store: redis when configured, in-process otherwise.
	var store session.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = session.NewRedisStore(rdb, "")
		infoLog.Printf("Using redis session store at %s", cfg.Redis.Addr)
	} else {
		store = session.NewMemoryStore()
	}
	tokens := &session.TokenFromStore{Store: store}

	timeout := time.Duration(cfg.Directory.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := directory.NewClient(&http.Client{Timeout: timeout}, cfg.Directory.BaseURL, tokens, logger)

	bus := notify.NewBus()
	var stream *notify.Stream
	if cfg.Directory.WSURL != "" {
		stream = notify.NewStream(cfg.Directory.WSURL, tokens, bus, logger)
	}

	orch := finder.New(client, bus, logger, finder.Config{
		DefaultCenter: models.GeoPoint{
			Latitude:  cfg.Search.CenterLat,
			Longitude: cfg.Search.CenterLng,
		},
		DefaultRadiusKm: cfg.Search.RadiusKm,
		PageSize:        cfg.Search.PageSize,
		FetchTimeout:    timeout,
	})

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		cfg:                 cfg,
		store:               store,
		bus:                 bus,
		stream:              stream,
		finder:              orch,
		searchHandler:       &handlers.SearchHandler{Finder: orch},
		serviceHandler:      &handlers.ServiceHandler{Directory: client},
		sessionHandler:      &handlers.SessionHandler{Directory: client, Store: store},
		reviewHandler:       &handlers.ReviewHandler{Directory: client},
		complaintHandler:    &handlers.ComplaintHandler{Directory: client},
		applicationHandler:  &handlers.ApplicationHandler{Directory: client},
		notificationHandler: handlers.NewNotificationHandler(client, bus),
	}
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
