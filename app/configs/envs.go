package configs

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type ENV struct {
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	DBMaxRetries int
	DBRetryDelay time.Duration

	Port     string
	AppEnv   string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	OrderTxTimeout      time.Duration
	OrderNumberAttempts int
	TaxPercent          decimal.Decimal
	ShippingFlat        decimal.Decimal
	FreeShippingOver    decimal.Decimal

	KafkaBrokers []string
	KafkaTopic   string
}

func (e ENV) IsDevelopment() bool {
	return e.AppEnv == "development"
}

func (e ENV) DSN() string {
	return e.DBUser + ":" + e.DBPassword + "@tcp(" + e.DBHost + ":" + e.DBPort + ")/" + e.DBName +
		"?charset=utf8mb4&parseTime=True&loc=Local"
}

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_NAME", "gemcart")
	v.SetDefault("DB_MAX_RETRIES", 10)
	v.SetDefault("DB_RETRY_DELAY", "5s")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("ORDER_TX_TIMEOUT", "5s")
	v.SetDefault("ORDER_NUMBER_ATTEMPTS", 5)
	v.SetDefault("TAX_PERCENT", "0")
	v.SetDefault("SHIPPING_FLAT", "0")
	v.SetDefault("FREE_SHIPPING_OVER", "0")
	v.SetDefault("KAFKA_TOPIC", "gemcart.orders")

	return ENV{
		DBHost:              v.GetString("DB_HOST"),
		DBUser:              v.GetString("DB_USER"),
		DBPassword:          v.GetString("DB_PASSWORD"),
		DBName:              v.GetString("DB_NAME"),
		DBPort:              v.GetString("DB_PORT"),
		DBMaxRetries:        v.GetInt("DB_MAX_RETRIES"),
		DBRetryDelay:        v.GetDuration("DB_RETRY_DELAY"),
		Port:                normalizePort(v.GetString("APP_PORT")),
		AppEnv:              v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		TokenTTL:            v.GetDuration("TOKEN_TTL"),
		OrderTxTimeout:      v.GetDuration("ORDER_TX_TIMEOUT"),
		OrderNumberAttempts: v.GetInt("ORDER_NUMBER_ATTEMPTS"),
		TaxPercent:          decimalOrZero(v.GetString("TAX_PERCENT")),
		ShippingFlat:        decimalOrZero(v.GetString("SHIPPING_FLAT")),
		FreeShippingOver:    decimalOrZero(v.GetString("FREE_SHIPPING_OVER")),
		KafkaBrokers:        splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:          v.GetString("KAFKA_TOPIC"),
	}
}

func normalizePort(p string) string {
	if p != "" && !strings.Contains(p, ":") {
		return ":" + p
	}
	return p
}

func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		log.Printf("Warning: invalid decimal %q in environment, using 0", s)
		return decimal.Zero
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
