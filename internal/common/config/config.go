package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"soulscribe"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:""`
		Database        string        `env:"POSTGRES_DB" envDefault:"soulscribe"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		JWTSecret    string        `env:"JWT_SECRET,required"`
		TokenTTL     time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"24h"`
		ProofDomain  string        `env:"AUTH_PROOF_DOMAIN" envDefault:"soulscribe.app"`
		ProofMaxAge  time.Duration `env:"AUTH_PROOF_MAX_AGE" envDefault:"5m"`
		AdminWallets []string      `env:"AUTH_ADMIN_WALLETS" envSeparator:","`
	}

	Ledger struct {
		BaseURL  string        `env:"LEDGER_BASE_URL" envDefault:"https://ledger.soulscribe.app"`
		APIToken string        `env:"LEDGER_API_TOKEN" envDefault:""`
		Network  string        `env:"LEDGER_NETWORK" envDefault:"mainnet"`
		Timeout  time.Duration `env:"LEDGER_TIMEOUT" envDefault:"8s"`
	}

	Moderation struct {
		// When enabled, a submission whose scorecard passes the approval
		// thresholds is approved and tokenized without an admin action.
		// Default is manual review of every submission.
		AutoApprove bool `env:"MODERATION_AUTO_APPROVE" envDefault:"false"`
	}
}

// GetDSN builds the Postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User, c.Postgres.Password,
		c.Postgres.Database, c.Postgres.SSLMode)
}

func Load() *Config {
	// Missing .env is fine; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
