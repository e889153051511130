package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/eventlocator/backend/internal/adapters/database/postgres"
	redisStorage "github.com/eventlocator/backend/internal/adapters/database/redis"
	"github.com/eventlocator/backend/internal/adapters/logger"
)

// Notifications is the configuration surface of the reminder pipeline.
type Notifications struct {
	Offsets      []string
	PollInterval time.Duration
	MaxAttempts  int
	MaxInFlight  int
}

type Config struct {
	Database      *gorm.DB
	Redis         *redisStorage.Client
	SMTPDialer    *gomail.Dialer
	Notifications Notifications
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("notifications.offsets", []string{"24h", "1h"})
	viper.SetDefault("notifications.poll-interval", "60s")
	viper.SetDefault("notifications.max-attempts", 3)
	viper.SetDefault("notifications.max-in-flight", 8)

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=UTC",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisClient, err := redisStorage.New(redisStorage.Options{
		Host:     viper.GetString("service.redis.host"),
		Port:     viper.GetString("service.redis.port"),
		Password: viper.GetString("service.redis.password"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	dialer := gomail.NewDialer(
		viper.GetString("service.smtp.host"),
		viper.GetInt("service.smtp.port"),
		viper.GetString("service.smtp.user"),
		viper.GetString("service.smtp.pass"),
	)

	return &Config{
		Database:   database,
		Redis:      redisClient,
		SMTPDialer: dialer,
		Notifications: Notifications{
			Offsets:      viper.GetStringSlice("notifications.offsets"),
			PollInterval: viper.GetDuration("notifications.poll-interval"),
			MaxAttempts:  viper.GetInt("notifications.max-attempts"),
			MaxInFlight:  viper.GetInt("notifications.max-in-flight"),
		},
	}
}
