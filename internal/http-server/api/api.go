package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"CampaignBot/internal/config"
	"CampaignBot/internal/http-server/handlers/errors"
	"CampaignBot/internal/http-server/handlers/health"
	"CampaignBot/internal/http-server/handlers/webhook"
	"CampaignBot/internal/http-server/middleware/authenticate"
	"CampaignBot/internal/http-server/middleware/timeout"
	"CampaignBot/internal/lib/sl"
	"CampaignBot/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// New starts the HTTP server (blocking). The webhook route is guarded by
// the platform secret token; the operational API by the bearer key.
func New(conf *config.Config, log *slog.Logger, bot webhook.Core, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(30))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	if bot != nil {
		router.Post("/webhook/telegram", webhook.Telegram(log, conf.Telegram.WebhookSecret, bot))
	}

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(authenticate.New(log, conf.Listen.ApiKey))
		v1.Get("/health", health.Status(log))
		if hub != nil {
			v1.Get("/events", ws.ServeWS(hub, log))
		}
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
