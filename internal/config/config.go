package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/iremert/wordpecker/internal/progress"
)

type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Import    ImportConfig    `mapstructure:"import"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type EngineConfig struct {
	MasteryThreshold    int    `mapstructure:"mastery_threshold" validate:"gte=1"`
	MasteryStreak       int    `mapstructure:"mastery_streak" validate:"gte=1"`
	RaiseAfterIncorrect int    `mapstructure:"raise_after_incorrect" validate:"gte=1"`
	LowerAfterCorrect   int    `mapstructure:"lower_after_correct" validate:"gte=1"`
	HistoryLimit        int    `mapstructure:"history_limit" validate:"gtefield=MasteryStreak,gtefield=RaiseAfterIncorrect,gtfield=LowerAfterCorrect"`
	Timezone            string `mapstructure:"timezone" validate:"required,timezone"`
	AchievementsFile    string `mapstructure:"achievements_file" validate:"omitempty,file"`
}

// Rules returns the review thresholds of the engine.
func (c EngineConfig) Rules() progress.Rules {
	return progress.Rules{
		MasteryThreshold:    c.MasteryThreshold,
		MasteryStreak:       c.MasteryStreak,
		RaiseAfterIncorrect: c.RaiseAfterIncorrect,
		LowerAfterCorrect:   c.LowerAfterCorrect,
		HistoryLimit:        c.HistoryLimit,
	}
}

// Location returns the time zone streak days are counted in.
func (c EngineConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", c.Timezone, err)
	}
	return loc, nil
}

type StoreConfig struct {
	Driver    string         `mapstructure:"driver" validate:"oneof=yaml sqlite3 mysql postgres firebase"`
	Directory string         `mapstructure:"directory"`
	Database  DatabaseConfig `mapstructure:"database"`
	Firebase  FirebaseConfig `mapstructure:"firebase"`
	Retry     RetryConfig    `mapstructure:"retry"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"` // 0 selects the driver default
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"gte=0"`
}

type FirebaseConfig struct {
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	AuthToken      string `mapstructure:"auth_token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
}

type RetryConfig struct {
	Attempts int `mapstructure:"attempts" validate:"gte=1"`
	DelayMs  int `mapstructure:"delay_ms" validate:"gte=0"`
}

type AuthConfig struct {
	UserID    string `mapstructure:"user_id"`
	Token     string `mapstructure:"token"`
	JWTSecret string `mapstructure:"jwt_secret" validate:"required_with=Token"`
}

// ImportConfig describes the spreadsheet layout read by "list import".
// A negative column index disables that column.
type ImportConfig struct {
	Sheet      string        `mapstructure:"sheet"`
	SkipHeader bool          `mapstructure:"skip_header"`
	Columns    ImportColumns `mapstructure:"columns"`
}

type ImportColumns struct {
	Source          int `mapstructure:"source" validate:"gte=0"`
	Target          int `mapstructure:"target" validate:"gte=0,nefield=Source"`
	Pronunciation   int `mapstructure:"pronunciation" validate:"gte=-1"`
	ContextSentence int `mapstructure:"context_sentence" validate:"gte=-1"`
	ImageURL        int `mapstructure:"image_url" validate:"gte=-1"`
	Difficulty      int `mapstructure:"difficulty" validate:"gte=-1"`
}

type TemplatesConfig struct {
	ReportTemplate string `mapstructure:"report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	ReportDirectory string `mapstructure:"report_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	envFile    string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordpecker")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFile:    ".env",
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	if err := loadEnvFile(loader.envFile); err != nil {
		return nil, err
	}

	v.SetDefault("engine.mastery_threshold", progress.DefaultMasteryThreshold)
	v.SetDefault("engine.mastery_streak", progress.DefaultMasteryStreak)
	v.SetDefault("engine.raise_after_incorrect", progress.DefaultRaiseAfterIncorrect)
	v.SetDefault("engine.lower_after_correct", progress.DefaultLowerAfterCorrect)
	v.SetDefault("engine.history_limit", progress.DefaultHistoryLimit)
	v.SetDefault("engine.timezone", "UTC")
	// An empty achievements file selects the built-in catalog
	v.SetDefault("engine.achievements_file", "")
	v.SetDefault("store.driver", "yaml")
	v.SetDefault("store.directory", "data")
	v.SetDefault("store.database.host", "localhost")
	v.SetDefault("store.database.database", "wordpecker")
	v.SetDefault("store.database.username", "user")
	v.SetDefault("store.database.path", filepath.Join("data", "wordpecker.db"))
	v.SetDefault("store.firebase.timeout_seconds", 10)
	v.SetDefault("store.retry.attempts", 3)
	v.SetDefault("store.retry.delay_ms", 200)
	v.SetDefault("import.skip_header", true)
	v.SetDefault("import.columns.source", 0)
	v.SetDefault("import.columns.target", 1)
	v.SetDefault("import.columns.pronunciation", 2)
	v.SetDefault("import.columns.context_sentence", 3)
	v.SetDefault("import.columns.image_url", -1)
	v.SetDefault("import.columns.difficulty", -1)
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.report_template", "")
	v.SetDefault("outputs.report_directory", filepath.Join("outputs", "reports"))

	// Secrets are bound to environment variables
	envBindings := []struct {
		key string
		env string
	}{
		{"store.database.password", "DB_PASSWORD"},
		{"store.firebase.auth_token", "FIREBASE_AUTH_TOKEN"},
		{"auth.user_id", "WORDPECKER_USER_ID"},
		{"auth.token", "WORDPECKER_TOKEN"},
		{"auth.jwt_secret", "WORDPECKER_JWT_SECRET"},
	}
	for _, binding := range envBindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", binding.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// loadEnvFile exports the variables of a dotenv file without overriding the
// process environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("godotenv.Load(%s) > %w", path, err)
	}
	return nil
}
