package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/formintake/intake-api/internal/logger"
	"github.com/formintake/intake-api/internal/validator"
)

type PostgresConfig struct {
	User               string        `validate:"required"`
	Password           string        `validate:"required"`
	Host               string        `validate:"required"`
	Database           string        `validate:"required"`
	MaxIdleConnections int           `validate:"required" mapstructure:"max_idle_connections"`
	MaxOpenConnections int           `validate:"required" mapstructure:"max_open_connections"`
	ConnectionTTL      time.Duration `validate:"required" mapstructure:"connection_ttl"`
	Port               int16         `validate:"required"`
}

// UploadsConfig controls where received attachments are persisted.
//
// The fs backend stores files in a flat directory served by this process
// under /uploads. The s3 backend stores them in a bucket instead.
type UploadsConfig struct {
	Backend       string `mapstructure:"backend"         validate:"required,oneof=fs s3"`
	Dir           string `mapstructure:"dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	SSLEnabled      bool   `mapstructure:"ssl_enabled"`
}

// MailConfig is the relay identity used for submitter notifications.
// An empty api_key puts the mailer in dev mode: sends are logged, not made.
type MailConfig struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"    validate:"required"`
}

type CORSConfig struct {
	// Origins lists the allowed cross-origin callers. Empty allows any.
	Origins []string `mapstructure:"origins"`
}

type SlogConfig struct {
	Level int `mapstructure:"level"`
}

type GormLogConfig struct {
	Level        int  `mapstructure:"level"`
	TraceQueries bool `mapstructure:"trace_queries"`
}

type LoggingConfig struct {
	Gorm    GormLogConfig `mapstructure:"gorm"`
	App     SlogConfig    `mapstructure:"app"`
	UseOTLP bool          `mapstructure:"use_otlp"`
}

// See intakeapi.yaml for an example config
type Config struct {
	Postgres             *PostgresConfig `mapstructure:"postgres"              validate:"required"`
	Uploads              *UploadsConfig  `mapstructure:"uploads"               validate:"required"`
	S3                   *S3Config       `mapstructure:"s3"`
	Mail                 *MailConfig     `mapstructure:"mail"                  validate:"required"`
	Logging              *LoggingConfig  `mapstructure:"logging"               validate:"required"`
	CORS                 *CORSConfig     `mapstructure:"cors"`
	ListenAddress        string          `mapstructure:"listen_address"        validate:"required"`
	GracefulShutdownSecs int64           `mapstructure:"graceful_shutdown_secs"`
}

const (
	AppLogLevel                string = "logging.app.level"
	CORSOrigins                string = "cors.origins"
	EnvPrefix                  string = "intakeapi"
	GormLogLevel               string = "logging.gorm.level"
	GormTraceQueries           string = "logging.gorm.trace_queries"
	GracefulShutdownSecs       string = "graceful_shutdown_secs"
	ListenAddress              string = "listen_address"
	MailAPIKey                 string = "mail.api_key" // #nosec
	MailFrom                   string = "mail.from"
	PostgresConnectonTTL       string = "postgres.connection_ttl"
	PostgresDatabase           string = "postgres.database"
	PostgresHost               string = "postgres.host"
	PostgresMaxIdleConnections string = "postgres.max_idle_connections"
	PostgresMaxOpenConnections string = "postgres.max_open_connections"
	PostgresPassword           string = "postgres.password"
	PostgresPort               string = "postgres.port"
	PostgresUser               string = "postgres.user"
	S3AccessKeyID              string = "s3.access_key_id"
	S3SSLEnabled               string = "s3.ssl_enabled"
	S3SecretAccessKey          string = "s3.secret_access_key" // #nosec
	UploadsBackend             string = "uploads.backend"
	UploadsDir                 string = "uploads.dir"
	UploadsPublicBaseURL       string = "uploads.public_base_url"
	UseOTLP                    string = "logging.use_otlp"
)

var configReady = false
var config Config

func GetConfig() (*Config, error) {
	if configReady {
		logger.Logger.Debug("returning already-loaded config")
		return &config, nil
	}
	logger.Logger.Info("loading config")

	v := viper.New()

	v.SetConfigName("intakeapi")

	v.AddConfigPath("/etc/intakeapi/")
	v.AddConfigPath(".")

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AutomaticEnv()

	// workaround for https://github.com/spf13/viper/issues/761
	// bind env vars explicitly so they unmarshal into the nested struct
	err := v.BindEnv(PostgresPassword)
	if err != nil {
		return nil, err
	}
	err = v.BindEnv(MailAPIKey)
	if err != nil {
		return nil, err
	}
	err = v.BindEnv(MailFrom)
	if err != nil {
		return nil, err
	}
	err = v.BindEnv(S3AccessKeyID)
	if err != nil {
		return nil, err
	}
	err = v.BindEnv(S3SecretAccessKey)
	if err != nil {
		return nil, err
	}

	v.SetDefault(ListenAddress, "[::]:3006")
	v.SetDefault(PostgresHost, "localhost")
	v.SetDefault(PostgresPort, 5432)
	v.SetDefault(PostgresMaxIdleConnections, 2)
	v.SetDefault(PostgresMaxOpenConnections, 10)
	v.SetDefault(PostgresConnectonTTL, 10*time.Minute)
	v.SetDefault(UploadsBackend, "fs")
	v.SetDefault(UploadsDir, "./uploads")
	v.SetDefault(S3SSLEnabled, true)
	v.SetDefault(GormLogLevel, int(slog.LevelDebug))
	v.SetDefault(GormTraceQueries, false)
	v.SetDefault(AppLogLevel, int(slog.LevelDebug))
	v.SetDefault(UseOTLP, false)
	v.SetDefault(GracefulShutdownSecs, 30)

	err = v.ReadInConfig()
	if err != nil {
		// ignore config file not found to allow pure env config
		if _, ok := err.(*viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		configReady = false
		return nil, err
	}

	valid := validator.Create()
	err = valid.Validate(&config)
	if err != nil {
		configReady = false
		return nil, err
	}

	configReady = true
	return &config, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s",
		url.QueryEscape(c.Postgres.User),
		url.QueryEscape(c.Postgres.Password),
		c.Postgres.Host, c.Postgres.Port,
		url.QueryEscape(c.Postgres.Database),
	)
}
