package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey        string `yaml:"api_key" env-default:""`
		AdminId       int64  `yaml:"admin_id" env-default:"0"`
		BotName       string `yaml:"bot_name" env-default:"CampaignBot"`
		WebhookSecret string `yaml:"webhook_secret" env-default:""`
		Enabled       bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Ads struct {
		BaseURL        string  `yaml:"base_url" env-default:"https://graph.facebook.com"`
		ApiVersion     string  `yaml:"api_version" env-default:"v19.0"`
		AccessToken    string  `yaml:"access_token" env-default:""`
		MinDailyBudget float64 `yaml:"min_daily_budget" env-default:"1"`
		TimeoutSec     int     `yaml:"timeout_sec" env-default:"30"`
	} `yaml:"ads"`
	OpenAI struct {
		ApiKey string `yaml:"api_key" env-default:""`
		Model  string `yaml:"model" env-default:"gpt-4o-mini"`
	} `yaml:"openai"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	Flow struct {
		SessionTTLHours int `yaml:"session_ttl_hours" env-default:"24"`
	} `yaml:"flow"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9200"`
		ApiKey string `yaml:"key" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
