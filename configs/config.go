package configs

import (
	"time"

	"github.com/Yashika2244-hub/fraud-detection-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port             string  `mapstructure:"PORT" validate:"required"`
	MySQLHost        string  `mapstructure:"MYSQL_HOST" validate:"required"`
	MySQLPort        int     `mapstructure:"MYSQL_PORT" validate:"min=1"`
	MySQLUser        string  `mapstructure:"MYSQL_USER" validate:"required"`
	MySQLPassword    string  `mapstructure:"MYSQL_PASSWORD"`
	MySQLDatabase    string  `mapstructure:"MYSQL_DATABASE" validate:"required"`
	DbConnectTimeout int     `mapstructure:"DB_CONNECT_TIMEOUT_SECONDS" validate:"min=1"`
	ExportDir        string  `mapstructure:"EXPORT_DIR"`
	QueryRowLimit    int     `mapstructure:"QUERY_ROW_LIMIT" validate:"min=0"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS" validate:"min=0"`
}

// ConnectTimeout returns the connect-phase timeout as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.DbConnectTimeout) * time.Second
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MYSQL_HOST", "127.0.0.1")
	viper.SetDefault("MYSQL_PORT", "3306")
	viper.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", "5")
	viper.SetDefault("EXPORT_DIR", "./exports")
	viper.SetDefault("QUERY_ROW_LIMIT", "600")
	viper.SetDefault("RATE_LIMIT_RPS", "0")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
