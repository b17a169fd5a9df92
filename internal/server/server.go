package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nexuslan/arena/internal/achievement"
	"github.com/nexuslan/arena/internal/activity"
	"github.com/nexuslan/arena/internal/betting"
	"github.com/nexuslan/arena/internal/database"
	"github.com/nexuslan/arena/internal/handler"
	"github.com/nexuslan/arena/internal/ledger"
	"github.com/nexuslan/arena/internal/logger"
	"github.com/nexuslan/arena/internal/marketplace"
	"github.com/nexuslan/arena/internal/metrics"
)

type Server struct {
	httpServer         *http.Server
	dbPool             database.Pool
	ledgerService      ledger.Service
	achievementService achievement.Service
	bettingService     betting.Service
	marketplaceService marketplace.Service
	activityService    activity.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, ledgerService ledger.Service, achievementService achievement.Service, bettingService betting.Service, marketplaceService marketplace.Service, activityService activity.Service) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Badge routes
		achievementHandler := handler.NewAchievementHandler(achievementService)
		r.Route("/badges", func(r chi.Router) {
			r.Get("/", achievementHandler.HandleListBadges)
			r.Get("/user", achievementHandler.HandleListUserBadges)
			r.Get("/progress", achievementHandler.HandleGetProgress)
			r.Post("/check", achievementHandler.HandleCheckBadges)
			r.Get("/leaderboard", achievementHandler.HandleLeaderboard)
			r.Get("/stats", achievementHandler.HandleGlobalStats)
		})

		// Comment ingest feeds social badge criteria
		r.Post("/comments", achievementHandler.HandleRecordComment)

		// Betting routes
		bettingHandler := handler.NewBettingHandler(bettingService)
		r.Route("/betting", func(r chi.Router) {
			r.Get("/markets", bettingHandler.HandleListMarkets)
			r.Get("/market", bettingHandler.HandleGetMarket)
			r.Post("/bets", bettingHandler.HandlePlaceBet)
			r.Get("/bets", bettingHandler.HandleListUserBets)
			r.Get("/stats", bettingHandler.HandleUserStats)
			r.Get("/leaderboard", bettingHandler.HandleLeaderboard)
			r.Get("/global-stats", bettingHandler.HandleGlobalStats)
		})

		// Economy routes
		economyHandler := handler.NewEconomyHandler(ledgerService)
		r.Route("/economy", func(r chi.Router) {
			r.Get("/profile", economyHandler.HandleGetProfile)
			r.Get("/transactions", economyHandler.HandleListTransactions)
			r.Post("/daily-bonus", economyHandler.HandleClaimDailyBonus)
			r.Get("/richest", economyHandler.HandleRichest)
			r.Post("/tournament-results", economyHandler.HandleTournamentResults)
			r.Get("/tournament-results", economyHandler.HandleTournamentStandings)
		})

		// Marketplace routes
		marketplaceHandler := handler.NewMarketplaceHandler(marketplaceService)
		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/items", marketplaceHandler.HandleListItems)
			r.Get("/item", marketplaceHandler.HandleGetItem)
			r.Post("/purchase", marketplaceHandler.HandlePurchase)
			r.Get("/inventory", marketplaceHandler.HandleGetInventory)
		})

		// Activity feed
		activityHandler := handler.NewActivityHandler(activityService)
		r.Get("/activity", activityHandler.HandleFeed)

		// Admin routes, API key required
		adminHandler := handler.NewAdminHandler(ledgerService, achievementService, bettingService, marketplaceService)
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(apiKey, trustedProxies, detector))

			r.Post("/give-coins", adminHandler.HandleGiveCoins)
			r.Post("/award-badge", adminHandler.HandleAwardBadge)

			r.Route("/betting", func(r chi.Router) {
				r.Post("/markets", adminHandler.HandleCreateMarket)
				r.Post("/close", adminHandler.HandleCloseMarket)
				r.Post("/cancel", adminHandler.HandleCancelMarket)
				r.Post("/settle", adminHandler.HandleSettleMarket)
			})

			r.Route("/marketplace", func(r chi.Router) {
				r.Post("/items", adminHandler.HandleCreateItem)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:             dbPool,
		ledgerService:      ledgerService,
		achievementService: achievementService,
		bettingService:     bettingService,
		marketplaceService: marketplaceService,
		activityService:    activityService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and metrics scrapes would drown the log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
