package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "pool_automation/docs"
	"pool_automation/internal/config"
	"pool_automation/internal/device"
	"pool_automation/internal/handlers"
	"pool_automation/internal/logger"
	"pool_automation/internal/metrics"
	"pool_automation/internal/repository"
	"pool_automation/internal/repository/db"
	"pool_automation/internal/server"
	"pool_automation/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load configs/config.yml + POOL_* env
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.GetWithEncoding(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := openDB(cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// panel: real hardware or the in-process simulator
	address := cfg.Device.Address
	var simSrv *server.Server
	if cfg.Device.Simulate {
		simSrv = &server.Server{}
		address = "127.0.0.1:" + cfg.Device.SimulatorPort
		runServer(simSrv, "127.0.0.1:"+cfg.Device.SimulatorPort, device.NewSimulator(), "simulator", log)
	}
	panel := device.NewClient(address, cfg.Device.StatusPath, cfg.Device.Timeout)
	log.Infow("panel_configured", "url", panel.URL(), "simulated", cfg.Device.Simulate)

	// wire dependencies
	repos := repository.NewRepository(conn)
	store := service.LoadStateStore(ctx, repos.StateRepo, log)
	m := metrics.New()
	services := service.NewService(repos, store, panel, m, log, service.Options{SettleDelay: cfg.Command.SettleDelay})
	apiHandler := handlers.NewHandler(services, m.Handler(), log)

	// start poll loop
	go services.Poller.Run(ctx, cfg.Poll.Interval)

	// start HTTP server
	srv := &server.Server{}
	runServer(srv, cfg.Port, apiHandler.InitRoutes(), "api", log)

	// graceful shutdown
	waitForShutdown(cancel, log, srv, simSrv)
}

// openDB initializes the SQLite database at path.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "pool.db")
		path = "pool.db"
	}
	return db.InitDB(path)
}

// runServer runs an HTTP server in a separate goroutine.
func runServer(srv *server.Server, port string, handler http.Handler, name string, log *logger.Logger) {
	go func() {
		log.Infow("http_listen", "server", name, "port", port)
		if err := srv.Run(port, handler); err != nil {
			log.Fatalw("error starting server", "server", name, "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, log *logger.Logger, servers ...*server.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, srv := range servers {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorw("server forced to shutdown", "err", err)
		}
	}
}
