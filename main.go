package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"Cabina/internal/calc/apiutil"
	"Cabina/internal/calc/earthing"
	"Cabina/internal/calc/importer"
	"Cabina/internal/calc/loads"
	"Cabina/internal/calc/report"
	"Cabina/internal/calc/selectivity"
	"Cabina/internal/calc/selector"
	"Cabina/internal/calc/switchgear"
	"Cabina/internal/catalog"
	"Cabina/internal/config"
	"Cabina/internal/logger"
	"Cabina/internal/ratelimit"
	"Cabina/internal/version"
	"Cabina/internal/wizard"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// HandleList registers the API and the static front end on mux.
func HandleList(mux *mux.Router, cat *catalog.Catalog, cfg *config.Config, log zerolog.Logger) {
	sel := selector.New(cat)
	checker := selectivity.New(cat)
	pipeline := wizard.New(cat)

	limiter := ratelimit.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, log)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.Middleware)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		apiutil.WriteJSON(w, log, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
	}).Methods("GET")

	loadsH := loads.NewHandler(log)
	importH := importer.NewHandler(log)
	selH := selector.NewHandler(sel, log)
	earthingH := earthing.NewHandler(log)
	selectivityH := selectivity.NewHandler(checker, log)
	switchgearH := switchgear.NewHandler(switchgear.New(sel, checker), log)
	projectH := wizard.NewHandler(pipeline, log)
	reportH := report.NewHandler(pipeline, log)

	tools := api.PathPrefix("/tools").Subrouter()
	tools.HandleFunc("/loads/calc", loadsH.Calc).Methods("POST")
	tools.HandleFunc("/loads/import", importH.Loads).Methods("POST")
	tools.HandleFunc("/transformer/select", selH.Transformer).Methods("POST")
	tools.HandleFunc("/mv-breaker/select", selH.MVBreaker).Methods("POST")
	tools.HandleFunc("/lv-breaker/select", selH.LVBreaker).Methods("POST")
	tools.HandleFunc("/lv-switch/select", selH.LVSwitch).Methods("POST")
	tools.HandleFunc("/earth-switch/select", selH.EarthSwitch).Methods("POST")
	tools.HandleFunc("/earthing/design", earthingH.Design).Methods("POST")
	tools.HandleFunc("/selectivity/verify", selectivityH.Verify).Methods("POST")
	tools.HandleFunc("/switchgear/mv", switchgearH.MV).Methods("POST")
	tools.HandleFunc("/switchgear/lv", switchgearH.LV).Methods("POST")

	project := api.PathPrefix("/project").Subrouter()
	project.HandleFunc("/design", projectH.Design).Methods("POST")
	project.HandleFunc("/batch", projectH.Batch).Methods("POST")
	project.HandleFunc("/report/pdf", reportH.PDF).Methods("POST")
	project.HandleFunc("/report/xlsx", reportH.XLSX).Methods("POST")

	mux.PathPrefix("/").
		Handler(http.FileServer(http.Dir(cfg.StaticDir)))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New(logger.Config{})
		l.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	cat, err := catalog.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mux := mux.NewRouter()
	HandleList(mux, cat, cfg, log)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: CORS(mux),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", cfg.Addr).Bool("tls", cfg.TLS()).Str("version", version.String()).Msg("Starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	wg.Wait()
	log.Info().Msg("Server stopped")
}
