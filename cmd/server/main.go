package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alligatorO15/fin-reports/internal/api"
	"github.com/alligatorO15/fin-reports/internal/config"
	"github.com/alligatorO15/fin-reports/internal/database"
	"github.com/alligatorO15/fin-reports/internal/repository"
	"github.com/alligatorO15/fin-reports/internal/service"
	"github.com/alligatorO15/fin-reports/internal/sheets"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// загрузка .env файла
	envErr := godotenv.Load()

	// загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Ошибка конфигурации: %v", err)
	}

	log := config.NewLogger(cfg.LogLevel)
	if envErr != nil {
		log.Debug("Файл .env не найден, используются переменные окружения")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// источник строк: таблица по API или загруженные в postgres строки
	var (
		source sheets.RowSource
		repos  *repository.Repositories
	)
	switch cfg.SourceDriver {
	case config.SourceDriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			log.Fatalf("Ошибка подключения к базе данных: %v", err)
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db, log); err != nil {
			log.Fatalf("Ошибка выполнения миграций: %v", err)
		}

		repos = repository.NewRepositories(db)
		source = repos.SheetRows
	default:
		source = sheets.NewHTTPSource(cfg.SheetsBaseURL, cfg.SheetsSpreadsheetID, cfg.SheetsAPIKey, cfg.SheetsTimeout, log)
	}

	// кэш строк
	var rowCache service.RowCache
	switch cfg.CacheDriver {
	case config.CacheDriverRedis:
		client, err := sheets.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Ошибка подключения к redis: %v", err)
		}
		defer client.Close()
		cached := sheets.NewCachedSource(source, sheets.NewRedisCache(client, cfg.CacheTTL), log)
		source, rowCache = cached, cached
	case config.CacheDriverMemory:
		cached := sheets.NewCachedSource(source, sheets.NewMemoryCache(cfg.CacheTTL), log)
		source, rowCache = cached, cached
	}

	// инициализация сервисов
	services, err := service.NewServices(repos, source, rowCache, cfg, log)
	if err != nil {
		log.Fatalf("Ошибка инициализации сервисов: %v", err)
	}

	if err := services.Refresher.Start(cfg.RefreshCron); err != nil {
		log.Fatalf("Некорректное расписание REFRESH_CRON %q: %v", cfg.RefreshCron, err)
	}
	defer services.Refresher.Stop()

	// инициализация и запуск API сервера
	server := api.NewServer(cfg, services, log)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Ошибка остановки сервера")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"source": cfg.SourceDriver,
		"cache":  cfg.CacheDriver,
		"auth":   services.Auth.Enabled(),
	}).Info("Запуск сервера отчетов")

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
	log.Info("Сервер остановлен")
}
