// Package main is the entry point for the gdys fleet management API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gdys/internal/auth"
	"gdys/internal/blob"
	"gdys/internal/config"
	"gdys/internal/logger"
	"gdys/internal/observability"
	"gdys/internal/server"
	"gdys/internal/server/handlers"
	"gdys/internal/server/middleware"
	"gdys/internal/store"
	"gdys/internal/store/memory"
	"gdys/internal/store/postgres"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	seedFlag := flag.Bool("seed", false, "Seed the in-memory store with development data")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogger := logger.New()
	ctx := context.Background()

	st, err := openStore(ctx, cfg, *migrateFlag, *seedFlag)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Tracing
	shutdownTracer, err := observability.InitTracer(ctx, "gdys-server", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	// Metrics
	metricsHandler, shutdownMetrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			log.Printf("Failed to shutdown metrics: %v", err)
		}
	}()

	httpMetrics, err := observability.NewHTTPMetrics()
	if err != nil {
		log.Printf("Failed to register http metrics: %v", err)
	}

	blobs, err := openBlobs(cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	h := handlers.New(st, blobs, cfg, slogger)
	logging := middleware.Logging(slogger, httpMetrics)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := server.New(addr, h, cfg, slogger, metricsHandler, logging)

	go func() {
		log.Printf("GDYS server starting on %s (store=%s)", addr, cfg.StoreKind)
		if err := srv.Run(ctx); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited properly")
}

func openStore(ctx context.Context, cfg *config.Config, migrate, seed bool) (store.Store, error) {
	switch cfg.StoreKind {
	case config.StorePostgres:
		st, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if migrate {
			log.Println("Running database migrations...")
			if err := postgres.Migrate(st.DB()); err != nil {
				st.Close()
				return nil, err
			}
			log.Println("Migrations completed successfully")
		}
		return st, nil
	default:
		st := memory.New()
		if seed {
			users, err := seedUsers()
			if err != nil {
				return nil, err
			}
			if err := st.Seed(ctx, users); err != nil {
				return nil, err
			}
			log.Println("Seeded in-memory store with development data")
		}
		return st, nil
	}
}

// seedUsers builds the development accounts. All passwords are "password".
func seedUsers() ([]store.User, error) {
	accounts := []struct {
		email    string
		name     string
		role     store.Role
		vesselID string
	}{
		{"admin@gdys.local", "Fleet Admin", store.RoleSystemAdmin, ""},
		{"dpa@gdys.local", "DPA Office", store.RoleDPAOffice, ""},
		{"captain@gdys.local", "Captain Aurora", store.RoleCaptain, "vessel-1"},
		{"chief@gdys.local", "Chief Engineer Aurora", store.RoleChiefEngineer, "vessel-1"},
	}

	users := make([]store.User, 0, len(accounts))
	for _, a := range accounts {
		salt, err := auth.GenerateSalt()
		if err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword("password", salt)
		if err != nil {
			return nil, err
		}
		users = append(users, store.User{
			Email:        a.email,
			Name:         a.name,
			Role:         a.role,
			VesselID:     a.vesselID,
			PasswordHash: hash,
			PasswordSalt: salt,
		})
	}
	return users, nil
}

func openBlobs(cfg *config.Config) (blob.Store, error) {
	if cfg.UploadDir == "" {
		return blob.NewMemory(), nil
	}
	return blob.NewFilesystem(cfg.UploadDir)
}
