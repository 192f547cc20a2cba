package main

import (
	"flag"
	"log/slog"
	"time"

	"CampaignBot/ads"
	"CampaignBot/ai/gpt"
	"CampaignBot/bot"
	"CampaignBot/flow"
	"CampaignBot/internal/config"
	repository "CampaignBot/internal/database"
	"CampaignBot/internal/http-server/api"
	"CampaignBot/internal/http-server/handlers/webhook"
	"CampaignBot/internal/lib/logger"
	"CampaignBot/internal/lib/sl"
	"CampaignBot/internal/ws"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting campaignbot", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	adsClient := ads.NewClient(conf, lg)
	if adsClient == nil {
		lg.Error("ads access token is required")
		return
	}

	var store flow.SessionStore
	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		store = flow.NewMongoSessionStore(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo session store initialized")
	} else {
		store = flow.NewMemorySessionStore(time.Duration(conf.Flow.SessionTTLHours) * time.Hour)
		lg.Info("in-memory session store initialized")
	}

	catalog := flow.NewCatalog(adsClient, conf.Ads.MinDailyBudget)
	engine := flow.NewEngine(store, catalog, adsClient, lg)

	if copyWriter := gpt.NewCopyWriter(conf, lg); copyWriter != nil {
		engine.SetCopySuggester(copyWriter)
		lg.With(
			sl.Secret("openai_key", conf.OpenAI.ApiKey),
		).Info("copy writer initialized")
	}

	hub := ws.NewHub(lg)
	go hub.Run()
	engine.SetEventSink(hub)

	dispatcher := bot.NewDispatcher(engine, lg)

	var webhookCore webhook.Core
	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, dispatcher, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			webhookCore = tgBot
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
		}
	}

	// *** blocking start with http server ***
	err = api.New(conf, lg, webhookCore, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
