package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/studydesk-app/studydesk/internal/answer"
	"github.com/studydesk-app/studydesk/internal/handler"
	"github.com/studydesk-app/studydesk/internal/middleware"
	"github.com/studydesk-app/studydesk/internal/store"
	"github.com/studydesk-app/studydesk/internal/token"
)

// Config holds server wiring options.
type Config struct {
	JWTSecret    string
	SecureCookie bool
	Answer       answer.Config
}

type Server struct {
	db          *sql.DB
	authH       *handler.AuthHandler
	assignmentH *handler.AssignmentHandler
	answerH     *handler.AnswerHandler
	documentH   *handler.DocumentHandler
	tokens      *token.Service
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	assignmentStore := store.NewAssignmentStore(db)
	tokens := token.NewService(cfg.JWTSecret, 0)
	answerClient := answer.NewClient(cfg.Answer)

	return &Server{
		db:          db,
		authH:       handler.NewAuthHandler(userStore, tokens, cfg.SecureCookie, logger.With("component", "auth")),
		assignmentH: handler.NewAssignmentHandler(assignmentStore, logger.With("component", "assignment")),
		answerH:     handler.NewAnswerHandler(answerClient, logger.With("component", "answer")),
		documentH:   handler.NewDocumentHandler(logger.With("component", "document")),
		tokens:      tokens,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/auth/logout", s.authH.Logout)
	outerMux.HandleFunc("POST /api/answers/generate", s.answerH.Generate)
	outerMux.HandleFunc("POST /api/answers/rewrite", s.answerH.Rewrite)
	outerMux.HandleFunc("POST /api/documents/parse", s.documentH.ParsePDF)
	outerMux.HandleFunc("POST /api/export/pdf", s.documentH.ExportPDF)
	outerMux.HandleFunc("POST /api/export/docx", s.documentH.ExportDOCX)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/api/auth/me", authMiddleware(protectedMux))
	outerMux.Handle("/api/assignments", authMiddleware(protectedMux))
	outerMux.Handle("/api/assignments/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/auth/me", s.authH.Me)

	mux.HandleFunc("POST /api/assignments", s.assignmentH.Create)
	mux.HandleFunc("GET /api/assignments", s.assignmentH.List)
	mux.HandleFunc("GET /api/assignments/{id}", s.assignmentH.Get)
	mux.HandleFunc("DELETE /api/assignments/{id}", s.assignmentH.Delete)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
