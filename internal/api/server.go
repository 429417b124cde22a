package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"klicks/internal/auth"
	"klicks/internal/config"
	"klicks/internal/game"
	"klicks/internal/sessions"
)

type contextKey string

const sessionContextKey contextKey = "session"

type Server struct {
	cfg      *config.APIConfig
	log      *slog.Logger
	engine   *game.Engine
	sessions *sessions.Store
	metrics  *metrics
	mux      *chi.Mux
}

func New(cfg *config.APIConfig, logger *slog.Logger, engine *game.Engine, store *sessions.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		log:      logger,
		engine:   engine,
		sessions: store,
		metrics:  newMetrics(),
		mux:      chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Count()})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/session", s.handleCreateSession)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/profile", s.handleProfile)
			r.Post("/click", s.handleClick)
			r.Get("/businesses", s.handleBusinessList)
			r.Post("/businesses/{id}/buy", s.handleBuyBusiness)
			r.Post("/income/collect", s.handleCollect)
			r.Get("/vehicles", s.handleVehicleList)
			r.Post("/vehicles/{id}/buy", s.handleBuyVehicle)
			r.Post("/wager", s.handleWager)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.adminMiddleware)
			r.Post("/admin/grant", s.handleGrant)
		})
	})
}

func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		session, ok := s.sessions.Get(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown session token")
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.AdminToken(s.cfg.AdminToken)
		if !token.Matches(bearerToken(r.Header.Get("Authorization"))) {
			writeError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) (*game.Session, error) {
	session, ok := ctx.Value(sessionContextKey).(*game.Session)
	if !ok || session == nil {
		return nil, errors.New("missing session context")
	}
	return session, nil
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	token, session := s.sessions.Create()
	s.metrics.sessionsStarted.Inc()
	s.log.Info("session started", "session", session.ID())
	writeJSON(w, http.StatusCreated, map[string]any{
		"token":   token,
		"profile": s.engine.Profile(session),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Profile(session))
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.engine.Click(session)
	if err != nil {
		if errors.Is(err, game.ErrCooldownActive) {
			s.metrics.clicksRejected.Inc()
		}
		s.writeDomainError(w, err)
		return
	}
	s.metrics.clicks.Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBusinessList(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"businesses": s.engine.Businesses(session)})
}

func (s *Server) handleBuyBusiness(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	out, err := s.engine.BuyBusiness(session, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.purchases.WithLabelValues("business").Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.engine.CollectIncome(session)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.collections.Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleVehicleList(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": s.engine.Vehicles(session)})
}

func (s *Server) handleBuyVehicle(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	out, err := s.engine.BuyVehicle(session, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.purchases.WithLabelValues("vehicle").Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleWager(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Amount int64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.engine.Wager(session, in.Amount)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	outcome := "lost"
	if out.Won {
		outcome = "won"
	}
	s.metrics.wagers.WithLabelValues(outcome).Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGrant(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SessionToken string `json:"session_token"`
		Kind         string `json:"kind"`
		Amount       int64  `json:"amount"`
		Tier         string `json:"tier"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, ok := s.sessions.Get(in.SessionToken)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session token")
		return
	}
	out, err := s.engine.Grant(session, game.GrantInput{
		Kind:   game.GrantKind(in.Kind),
		Amount: in.Amount,
		Tier:   in.Tier,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.metrics.grants.Inc()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrCooldownActive):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrInvalidAmount), errors.Is(err, game.ErrNoIncomeSource):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrAlreadyOwned):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrItemNotFound), errors.Is(err, game.ErrUnknownTier):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
