package main

import (
	assistant "Sitewise/internal/assistant"
	auth "Sitewise/internal/auth"
	batch "Sitewise/internal/calc/batch"
	importer "Sitewise/internal/calc/importer"
	report "Sitewise/internal/calc/report"
	review "Sitewise/internal/calc/review"
	windzone "Sitewise/internal/calc/windzone"
	chat "Sitewise/internal/chat"
	docs "Sitewise/internal/docs"
	profile "Sitewise/internal/profile"
	repo "Sitewise/internal/repo"
	telemetry "Sitewise/internal/telemetry"
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
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

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresDB(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}
	assistantURL := os.Getenv("ASSISTANT_API_URL")
	if assistantURL == "" {
		log.Fatal("ASSISTANT_API_URL environment variable is not set")
	}
	assistantKey := os.Getenv("ASSISTANT_API_KEY")
	if assistantKey == "" {
		log.Fatal("ASSISTANT_API_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo}
	profileH := &profile.ProfileHandler{Repo: userRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile", profileH.UpdateProfile).Methods("PATCH", "PUT")
	secureApi.HandleFunc("/profile/{id:[0-9]+}", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/upload-avatar", profileH.UploadAvatar).Methods("POST")

	chatH := &chat.Handler{
		Repo:      userRepo,
		Assistant: assistant.NewClient(assistantURL, assistantKey),
	}
	secureApi.HandleFunc("/chat/sessions", chatH.CreateSession).Methods("POST")
	secureApi.HandleFunc("/chat/sessions", chatH.ListSessions).Methods("GET")
	secureApi.HandleFunc("/chat/sessions/{id:[0-9]+}", chatH.GetTranscript).Methods("GET")
	secureApi.HandleFunc("/chat/sessions/{id:[0-9]+}/messages", chatH.Send).Methods("POST")

	windzoneH := &windzone.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}
	reviewH := &review.Handler{Repo: userRepo}

	secureApi.HandleFunc("/tools/windzone/classify", windzoneH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/windzone/batch", batchH.Sites).Methods("POST")
	secureApi.HandleFunc("/tools/windzone/import", importerH.Sites).Methods("POST")
	secureApi.HandleFunc("/tools/windzone/report", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/windzone/review", reviewH.Create).Methods("POST")
	secureApi.HandleFunc("/tools/windzone/review", reviewH.List).Methods("GET")

	telemetryH := &telemetry.Handler{Repo: userRepo}
	secureApi.HandleFunc("/telemetry/events", telemetryH.Ingest).Methods("POST")

	docsH := &docs.Handler{}
	secureApi.HandleFunc("/docs/list", docsH.List).Methods("GET")
	secureApi.HandleFunc("/docs/resolve", docsH.Resolve).Methods("GET")

	mux.PathPrefix("/uploads/").
		Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("./static/uploads/"))))

	mux.PathPrefix("/docs/").
		Handler(authEnv.AuthMiddleware(http.StripPrefix("/docs", http.FileServer(http.Dir("./docs")))))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	log.Println("Starting server on :443")
	HandleList(mux, db)
	handler := CORS(mux)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped cleanly")

	wg.Wait()
}
