package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/uwoguessr/uwoguessr-server/internal/api/handler"
	"github.com/uwoguessr/uwoguessr-server/internal/api/middleware"
	"github.com/uwoguessr/uwoguessr-server/internal/services/challenge"
	"github.com/uwoguessr/uwoguessr-server/internal/services/devicetoken"
	"github.com/uwoguessr/uwoguessr-server/internal/services/leaderboard"
	"github.com/uwoguessr/uwoguessr-server/internal/services/submission"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	TokenService         *devicetoken.Service
	ChallengeService     *challenge.Service
	LeaderboardService   *leaderboard.Service
	SubmissionController *submission.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tokenHandler := handler.NewTokenHandler(cfg.TokenService)
	submissionHandler := handler.NewSubmissionHandler(cfg.SubmissionController)
	challengeHandler := handler.NewChallengeHandler(cfg.ChallengeService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Create middleware
	deviceAuthMiddleware := middleware.DeviceAuth(cfg.TokenService)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.CORS())

	// Token issuance (no auth; this is how devices bootstrap)
	r.HandleFunc("/issue-device-token", tokenHandler.Issue).
		Methods(http.MethodPost, http.MethodOptions)

	// Score submission requires a verified device token. Routes must also
	// match OPTIONS so preflights reach the CORS middleware, which answers
	// them before auth runs.
	submit := r.PathPrefix("/submit-daily-score").Subrouter()
	submit.Use(deviceAuthMiddleware)
	submit.HandleFunc("", submissionHandler.Submit).
		Methods(http.MethodPost, http.MethodOptions)

	// Public reads
	r.HandleFunc("/daily-challenge", challengeHandler.Get).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/leaderboard", leaderboardHandler.List).
		Methods(http.MethodGet, http.MethodOptions)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
