// Package management serves the host bridge: a small authenticated HTTP API through which the
// host reports its state (calendar, exterior, activations, saves) and asks seasonal questions.
package management

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/seasonswap/internal/log"
	"github.com/chrissnell/seasonswap/internal/seasons"
	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/chrissnell/seasonswap/pkg/config"
	"github.com/chrissnell/seasonswap/pkg/responseformat"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the management API controller
type Controller struct {
	ctx              context.Context
	wg               *sync.WaitGroup
	managementConfig config.ManagementAPIData
	Server           http.Server
	manager          *seasons.Manager
	clock            *seasons.HostClock
	purges           *PurgeLatch
	store            *store.Store
	logger           *zap.SugaredLogger
	formatter        *responseformat.Formatter
	handlers         *Handlers
	started          time.Time
}

// NewController creates a new management API controller. clock and purges may be nil; the
// routes that need them then answer 503. st, when set, keeps a generated token across restarts.
func NewController(ctx context.Context, wg *sync.WaitGroup, manager *seasons.Manager, clock *seasons.HostClock, purges *PurgeLatch, st *store.Store, mc config.ManagementAPIData, logger *zap.SugaredLogger) (*Controller, error) {
	if manager == nil {
		return nil, fmt.Errorf("management API needs a season manager")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ctrl := &Controller{
		ctx:              ctx,
		wg:               wg,
		managementConfig: mc,
		manager:          manager,
		clock:            clock,
		purges:           purges,
		store:            st,
		logger:           logger,
		formatter:        responseformat.NewFormatter(),
		started:          time.Now(),
	}

	// Set default values
	if ctrl.managementConfig.Port == 0 {
		logger.Infof("management API port not specified; defaulting to %d", config.DefaultManagementPort)
		ctrl.managementConfig.Port = config.DefaultManagementPort
	}

	if ctrl.managementConfig.ListenAddr == "" {
		logger.Info("management API listen-addr not provided; defaulting to 127.0.0.1 (localhost only)")
		ctrl.managementConfig.ListenAddr = config.DefaultListenAddr
	}

	token, generated, err := resolveAuthToken(ctx, st, mc.AuthToken)
	if err != nil {
		return nil, err
	}
	ctrl.managementConfig.AuthToken = token
	if generated {
		logger.Info("═══════════════════════════════════════════════════════════════")
		logger.Info("        NEW MANAGEMENT API ACCESS TOKEN GENERATED             ")
		logger.Info("═══════════════════════════════════════════════════════════════")
		logger.Infof("   Token: %s", token)
		if st != nil {
			logger.Info("   *** SAVE THIS TOKEN - IT WILL NOT CHANGE ON RESTART ***")
		}
		logger.Info("   Use this token for API authentication")
		logger.Info("═══════════════════════════════════════════════════════════════")
	}

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.managementConfig.ListenAddr, ctrl.managementConfig.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the management API server
func (c *Controller) StartController() error {
	log.Info("Starting management API controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		c.logger.Infof("Management API server starting on %s", c.Server.Addr)

		var err error
		if c.managementConfig.Cert != "" && c.managementConfig.Key != "" {
			c.logger.Info("Starting management API server with TLS")
			err = c.Server.ListenAndServeTLS(c.managementConfig.Cert, c.managementConfig.Key)
		} else {
			c.logger.Info("Starting management API server without TLS")
			err = c.Server.ListenAndServe()
		}

		if err != http.ErrServerClosed {
			log.Errorf("Management API server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the management API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.loggingMiddleware)
	if c.managementConfig.EnableCORS {
		router.Use(c.corsMiddleware)
	}

	// Liveness needs no token
	router.HandleFunc("/status", c.handlers.GetStatus).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(c.authMiddleware)

	// Season state
	api.HandleFunc("/season", c.handlers.GetSeason).Methods("GET")
	api.HandleFunc("/season/update", c.handlers.UpdateSeason).Methods("POST")
	api.HandleFunc("/season/override", c.handlers.SetOverride).Methods("PUT")
	api.HandleFunc("/season/override", c.handlers.ClearOverride).Methods("DELETE")
	api.HandleFunc("/exterior", c.handlers.SetExterior).Methods("PUT")
	api.HandleFunc("/calendar", c.handlers.SetCalendar).Methods("PUT")
	api.HandleFunc("/events/activate", c.handlers.Activate).Methods("POST")
	api.HandleFunc("/cells/purge", c.handlers.TakePurge).Methods("POST")

	// Seasonal lookups
	api.HandleFunc("/lod/{category}", c.handlers.GetLODPath).Methods("GET")
	api.HandleFunc("/swap/{kind}/{id}", c.handlers.GetSwap).Methods("GET")
	api.HandleFunc("/swaps", c.handlers.GetSwapCounts).Methods("GET")
	api.HandleFunc("/snow/decide", c.handlers.DecideSnow).Methods("POST")
	api.HandleFunc("/snow/{id}", c.handlers.GetSnowInfo).Methods("GET")

	// Save records
	api.HandleFunc("/saves/cleanup", c.handlers.CleanupSaves).Methods("POST")
	api.HandleFunc("/saves/{name}", c.handlers.SaveSeason).Methods("POST")
	api.HandleFunc("/saves/{name}", c.handlers.ClearSeason).Methods("DELETE")
	api.HandleFunc("/saves/{name}/load", c.handlers.LoadSeason).Methods("POST")

	return router
}

// statusRecorder keeps the status code for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs every request with its status and duration
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		var err error
		if rec.status >= http.StatusInternalServerError {
			err = fmt.Errorf("%s", http.StatusText(rec.status))
		}
		log.LogHTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr, err)
	})
}

// corsMiddleware adds CORS headers
func (c *Controller) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates the bearer token
func (c *Controller) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+c.managementConfig.AuthToken {
			next.ServeHTTP(w, r)
			return
		}
		c.logger.Debugf("Auth failed for %s", r.URL.Path)
		c.formatter.WriteError(w, r, http.StatusUnauthorized, "Authentication required", nil)
	})
}
