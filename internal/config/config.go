package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// MediaRoot — корень файлового хранилища загруженных документов.
	MediaRoot string `env:"MEDIA_ROOT"`

	// MaxUploadMB — предел размера одного загружаемого файла.
	MaxUploadMB int `env:"MAX_UPLOAD_MB"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite-файл или postgres DSN)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.MediaRoot, "media-root", cfg.MediaRoot, "каталог хранения загруженных файлов")
	flag.IntVar(&cfg.MaxUploadMB, "max-upload-mb", cfg.MaxUploadMB, "максимальный размер загружаемого файла, МБ")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "dockeeper.db"
	}
	if cfg.MediaRoot == "" {
		cfg.MediaRoot = "media"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 32
	}

	// validate RunAddress: must be "address:port" or ":port". Otherwise use default.
	addrRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !addrRe.MatchString(cfg.RunAddress) {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg
}
