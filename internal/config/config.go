package config

import (
	"os"
	"strconv"
	"time"

	"crestgold_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort   string
	JWTSecret string
	AdminPIN  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	Economy Economy
}

// Economy holds the tunable constants of the mining economy. Defaults match
// the production values; each can be overridden through env.
type Economy struct {
	GoldToNgnRate      float64
	MinWithdrawalGold  int64
	DailyBonusGold     int64
	ReferralCommission float64
	GeodeChance        float64
	GeodeRewardMin     int64
	GeodeRewardMax     int64
	SettleDelay        time.Duration
	NoteTTL            time.Duration
	GrowthTick         time.Duration
	GrowthProbability  float64
	InitialUserCount   int64
}

func DefaultEconomy() Economy {
	return Economy{
		GoldToNgnRate:      0.28,
		MinWithdrawalGold:  5000,
		DailyBonusGold:     30,
		ReferralCommission: 0.10,
		GeodeChance:        0.05,
		GeodeRewardMin:     40,
		GeodeRewardMax:     400,
		SettleDelay:        1500 * time.Millisecond,
		NoteTTL:            800 * time.Millisecond,
		GrowthTick:         4 * time.Second,
		GrowthProbability:  0.4,
		InitialUserCount:   3482,
	}
}

// Load reads configuration from the environment, falling back to .env.
func Load() *Config {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	adminPIN := os.Getenv("ADMIN_PIN")
	if adminPIN == "" {
		logger.Fatal("ADMIN_PIN is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	eco := DefaultEconomy()
	if v := os.Getenv("GEODE_CHANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			eco.GeodeChance = f
		}
	}
	if v := os.Getenv("MIN_WITHDRAWAL_GOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			eco.MinWithdrawalGold = n
		}
	}
	if v := os.Getenv("GOLD_TO_NGN_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			eco.GoldToNgnRate = f
		}
	}
	if v := os.Getenv("DAILY_BONUS_GOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			eco.DailyBonusGold = n
		}
	}
	if v := os.Getenv("SETTLE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			eco.SettleDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("USER_GROWTH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			eco.GrowthTick = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:       port,
		JWTSecret:     jwtSecret,
		AdminPIN:      adminPIN,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		APIRateLimit:  apiRateLimit,
		APIRateWindow: apiRateWindow,
		Economy:       eco,
	}
}
