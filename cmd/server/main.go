package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/annel0/terrain-mesh/internal/api"
	"github.com/annel0/terrain-mesh/internal/config"
	"github.com/annel0/terrain-mesh/internal/logging"
	"github.com/annel0/terrain-mesh/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (или ENV TERRAIN_CONFIG)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("terrain"); err != nil {
		log.Fatalf("Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("Запуск terrain-mesh сервера...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("Ошибка чтения конфигурации: %v", err)
		log.Fatalf("Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Info("Конфигурация не задана, используются значения по умолчанию")
	}

	restAddr := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	logging.Info("Конфигурация: REST=%s, чанк=%dx%d, шум=%s",
		restAddr, cfg.Chunk.GetCols(), cfg.Chunk.GetRows(), cfg.Noise.GetBackend())

	// === TELEMETRY ===
	if cfg.Server.TelemetryEnabled {
		shutdown, err := observability.InitTelemetry(context.Background(), "terrain-mesh")
		if err != nil {
			logging.Warn("OpenTelemetry недоступен: %v", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// === REST СЕРВЕР ===
	server, err := api.NewRestServer(api.Config{
		Port:  restAddr,
		Chunk: cfg.Chunk,
		Noise: cfg.Noise,
	})
	if err != nil {
		logging.Error("Ошибка создания REST сервера: %v", err)
		log.Fatalf("Ошибка создания REST сервера: %v", err)
	}

	go func() {
		if err := server.Run(); err != nil {
			logging.Error("REST сервер завершился: %v", err)
			os.Exit(1)
		}
	}()

	logging.Info("Сервер запущен на %s", restAddr)

	// Ожидаем сигнал завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logging.Info("Получен сигнал завершения, останавливаемся...")
}
