package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Ampere/internal/auth"
	batch "Ampere/internal/calc/batch"
	electrical "Ampere/internal/calc/electrical"
	importer "Ampere/internal/calc/importer"
	recommend "Ampere/internal/calc/recommend"
	report "Ampere/internal/calc/report"
	config "Ampere/internal/config"
	projects "Ampere/internal/projects"
	repo "Ampere/internal/repo"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(ctx context.Context, mux *mux.Router, db *sql.DB, cfg *config.Config) {
	store := repo.NewPostgresDB(db)

	authEnv := &auth.Authenv{JWTkey: cfg.TokenKey, Repo: store, Secure: cfg.TLS()}
	projectsH := &projects.Handler{Repo: store}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	wg.Add(1)
	go func() {
		defer wg.Done()
		limiter.Run(ctx, time.Minute, 10*time.Minute)
	}()

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	electricalH := &electrical.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{}
	recommendH := &recommend.Handler{}

	secureApi.HandleFunc("/tools/electrical/calc", electricalH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/electrical/templates", electricalH.Templates).Methods("GET")
	secureApi.HandleFunc("/tools/electrical/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/electrical/import", importH.Circuits).Methods("POST")
	secureApi.HandleFunc("/tools/electrical/recommend", recommendH.Wire).Methods("POST")
	secureApi.HandleFunc("/tools/electrical/report/pdf", reportH.PDF).Methods("POST")
	secureApi.HandleFunc("/tools/electrical/report/xlsx", reportH.XLSX).Methods("POST")

	secureApi.HandleFunc("/projects", projectsH.List).Methods("GET")
	secureApi.HandleFunc("/projects", projectsH.Create).Methods("POST")
	secureApi.HandleFunc("/projects/{id}", projectsH.Get).Methods("GET")
	secureApi.HandleFunc("/projects/{id}", projectsH.Update).Methods("PUT")
	secureApi.HandleFunc("/projects/{id}", projectsH.Delete).Methods("DELETE")
	secureApi.HandleFunc("/projects/{id}/pdf", projectsH.PDF).Methods("GET")

	authFileServer := http.FileServer(http.Dir("./static/auth"))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := repo.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := repo.Migrate(db); err != nil {
		log.Fatal(err)
	}

	mux := mux.NewRouter()
	HandleList(ctx, mux, db, cfg)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting server on %s (tls=%t)", cfg.Addr, cfg.TLS())
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
