package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/viable-systems/vsm-pattern-engine/adapters/anomaly"
	"github.com/viable-systems/vsm-pattern-engine/adapters/correlation"
	"github.com/viable-systems/vsm-pattern-engine/adapters/telemetry"
	"github.com/viable-systems/vsm-pattern-engine/adapters/temporal"
	"github.com/viable-systems/vsm-pattern-engine/adapters/vectorstore"
	"github.com/viable-systems/vsm-pattern-engine/app/engine"
	"github.com/viable-systems/vsm-pattern-engine/internal/config"
	"github.com/viable-systems/vsm-pattern-engine/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	vectorStoreClient := vectorstore.New(
		appConfig.VectorStore.URL,
		appConfig.VectorStore.APIKey,
		time.Duration(appConfig.VectorStore.TimeoutMS)*time.Millisecond,
	)

	var telemetrySink ports.Telemetry
	if addr := os.Getenv("STATSD_ADDR"); addr != "" {
		emitter, err := telemetry.New(addr)
		if err != nil {
			log.Printf("Warning: telemetry disabled, failed to dial statsd: %v", err)
		} else {
			telemetrySink = emitter
			defer emitter.Close()
		}
	}

	coordinator := engine.New(
		temporal.NewDetector(),
		correlation.NewAnalyzer(),
		anomaly.NewDetector(ports.SystemRNG{}),
		vectorStoreClient,
		telemetrySink,
	)
	defer coordinator.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := engine.NewScheduler(coordinator, vectorStoreClient, time.Duration(appConfig.Detection.IntervalMS)*time.Millisecond)
	go scheduler.Run(ctx)

	log.Printf("VSM pattern engine running (detection interval %dms)", appConfig.Detection.IntervalMS)
	<-ctx.Done()
	log.Println("Shutting down")
	scheduler.Stop()
}
