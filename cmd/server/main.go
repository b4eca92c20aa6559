package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/rigveda-learn/backend/internal/catalog"
	"github.com/rigveda-learn/backend/internal/progress"
	"github.com/rigveda-learn/backend/internal/session"
	"github.com/rigveda-learn/backend/internal/store"
	"github.com/rigveda-learn/backend/internal/tts"
)

func main() {
	// .env is optional; real deployments set env vars directly
	godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize session store
	backend, err := newBackend(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	st := store.New(backend)

	// Initialize services
	sessions := session.NewManager()
	svc := progress.NewService(st)
	progressHandler := progress.NewHandler(svc)
	catalogHandler := catalog.NewHandler()
	ttsHandler := tts.NewHandler(newTTSClient(ctx))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/session", sessions.Begin).Methods("POST")
	api.HandleFunc("/catalog/hymns", catalogHandler.ListHymns).Methods("GET")
	api.HandleFunc("/catalog/hymns/{id}", catalogHandler.GetHymn).Methods("GET")
	api.HandleFunc("/catalog/quests", catalogHandler.ListQuests).Methods("GET")
	api.HandleFunc("/catalog/quote", catalogHandler.GetQuote).Methods("GET")
	api.HandleFunc("/tts", ttsHandler.Synthesize).Methods("GET")

	// Session-scoped routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(sessions.Middleware)
	protected.HandleFunc("/dashboard", progressHandler.GetDashboard).Methods("GET")
	protected.HandleFunc("/lessons/complete", progressHandler.CompleteLesson).Methods("POST")
	protected.HandleFunc("/progress", progressHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/streak", progressHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/streak/touch", progressHandler.TouchStreak).Methods("POST")
	protected.HandleFunc("/xp", progressHandler.GetXP).Methods("GET")
	protected.HandleFunc("/achievements", progressHandler.ListAchievements).Methods("GET")
	protected.HandleFunc("/achievements/{id}/unlock", progressHandler.UnlockAchievement).Methods("POST")
	protected.HandleFunc("/quests/today", progressHandler.GetTodayQuests).Methods("GET")
	protected.HandleFunc("/quests/micro/{id}/complete", progressHandler.CompleteMicroAction).Methods("POST")
	protected.HandleFunc("/quests/environmental/{id}/complete", progressHandler.CompleteQuest).Methods("POST")
	protected.HandleFunc("/quests/ethical/{id}/answer", progressHandler.AnswerEthicalChallenge).Methods("POST")
	protected.HandleFunc("/practice/complete", progressHandler.CompletePractice).Methods("POST")
	protected.HandleFunc("/export", progressHandler.Export).Methods("GET")
	protected.HandleFunc("/import", progressHandler.Import).Methods("POST")
	protected.HandleFunc("/tutorial", progressHandler.GetTutorial).Methods("GET")
	protected.HandleFunc("/tutorial/complete", progressHandler.CompleteTutorial).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// newBackend builds the session store backend named by STORE_DRIVER and
// starts its expiry sweeper. Memory is the default; sessions then live only
// as long as the process, which matches the app's session-scoped progress
// model.
func newBackend(ctx context.Context) (store.Backend, error) {
	switch driver := os.Getenv("STORE_DRIVER"); driver {
	case "", "memory":
		m := store.NewMemory()
		go m.StartSweeper(ctx)
		return m, nil
	case "postgres":
		db, err := store.Connect()
		if err != nil {
			return nil, err
		}
		p, err := store.NewPostgres(db)
		if err != nil {
			return nil, err
		}
		go p.StartSweeper(ctx)
		return p, nil
	default:
		log.Fatalf("Unknown STORE_DRIVER %q", driver)
		return nil, nil
	}
}

// newTTSClient connects to Google TTS when credentials are configured.
// Without them the pronunciation endpoint serves 503 and everything else
// works normally.
func newTTSClient(ctx context.Context) *tts.Client {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("[tts] GOOGLE_APPLICATION_CREDENTIALS not set, pronunciation disabled")
		return nil
	}

	cacheDir := os.Getenv("TTS_CACHE_DIR")
	if cacheDir == "" {
		cacheDir = "tts-cache"
	}

	client, err := tts.NewClient(ctx, cacheDir)
	if err != nil {
		log.Printf("[tts] client unavailable: %v", err)
		return nil
	}
	return client
}
