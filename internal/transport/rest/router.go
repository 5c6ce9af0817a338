package rest

import (
	"net/http"

	"neurodiverse/internal/config"
	"neurodiverse/internal/service"
	"neurodiverse/internal/transport/rest/handler"
	"neurodiverse/internal/transport/rest/middleware"
	"neurodiverse/internal/transport/ws"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	Config            *config.Config
	DocumentService   *service.DocumentService
	GenerationService *service.GenerationService
	OutputService     *service.OutputService
	WSHub             *ws.Hub
	Logger            *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	documentHandler := handler.NewDocumentHandler(c.DocumentService, c.Logger)
	generationHandler := handler.NewGenerationHandler(c.GenerationService, c.Logger)
	outputHandler := handler.NewOutputHandler(c.OutputService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.Logger)

	// CORS first so preflight requests never reach the handlers
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: c.Config.CORSAllowedOrigins,
		AllowedMethods: c.Config.CORSAllowedMethods,
		AllowedHeaders: c.Config.CORSAllowedHeaders,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(c.Logger))

	r.HandleFunc("/upload", documentHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/text_to_speech", outputHandler.TextToSpeech).Methods("GET", "OPTIONS")
	r.HandleFunc("/generate-pdf", outputHandler.GeneratePDF).Methods("POST", "OPTIONS")
	r.HandleFunc("/summarize", generationHandler.Summarize).Methods("POST", "OPTIONS")
	r.HandleFunc("/generate-story", generationHandler.GenerateStory).Methods("POST", "OPTIONS")
	r.HandleFunc("/process1", generationHandler.Process1).Methods("POST", "OPTIONS")
	r.HandleFunc("/get-story", generationHandler.GetStory).Methods("GET", "OPTIONS")

	// Generated outputs
	r.PathPrefix("/files/").Handler(
		http.StripPrefix("/files/", http.FileServer(http.Dir(c.Config.OutputDir))),
	).Methods("GET")

	// Pipeline events
	r.HandleFunc("/ws/events", wsHandler.Events).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
