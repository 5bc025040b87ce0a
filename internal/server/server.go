package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/underwriting/capacity-calculator/internal/calculation"
	"github.com/underwriting/capacity-calculator/internal/config"
	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/internal/output"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

const maxBodyBytes = 1 << 20

// Server exposes the layering calculator over HTTP.
type Server struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
	log    *zap.Logger
}

// New builds a Server. A nil logger disables request logging.
func New(engine *calculation.CalculationEngine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: engine, parser: config.NewInputParser(), log: log}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.getHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/capacity", s.getCapacityTables)
		r.Get("/capacity/{treaty}", s.getCapacityTable)
		r.Get("/layering", s.getLayering)
		r.Post("/layering", s.postLayering)
		r.Post("/batch", s.postBatch)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode response", zap.Error(err))
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) getHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getCapacityTables(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, output.BuildCapacityTables())
}

func (s *Server) getCapacityTable(w http.ResponseWriter, r *http.Request) {
	treaty, err := domain.ParseTreatyType(chi.URLParam(r, "treaty"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, output.BuildCapacityTable(treaty))
}

// tivValue accepts the TIV as a JSON number or string; it is parsed leniently later.
type tivValue string

func (v *tivValue) UnmarshalJSON(b []byte) error {
	*v = tivValue(strings.Trim(string(b), `"`))
	return nil
}

type layeringRequest struct {
	TotalInsuredValue tivValue `json:"total_insured_value"`
	HazardLevel       string   `json:"hazard_level"`
	TreatyType        string   `json:"treaty_type"`
}

type layeringResponse struct {
	Input  domain.LayeringInput  `json:"input"`
	Result domain.LayeringResult `json:"result"`
}

func (req layeringRequest) input() (domain.LayeringInput, error) {
	hazard, err := domain.ParseHazardLevel(req.HazardLevel)
	if err != nil {
		return domain.LayeringInput{}, err
	}
	treaty, err := domain.ParseTreatyType(req.TreatyType)
	if err != nil {
		return domain.LayeringInput{}, err
	}
	return domain.LayeringInput{
		TotalInsuredValue: decimal.ParseMoneyOrZero(string(req.TotalInsuredValue)),
		HazardLevel:       hazard,
		TreatyType:        treaty,
	}, nil
}

func (s *Server) layer(w http.ResponseWriter, req layeringRequest) {
	in, err := req.input()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, layeringResponse{Input: in, Result: s.engine.Calculate(in)})
}

func (s *Server) getLayering(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.layer(w, layeringRequest{
		TotalInsuredValue: tivValue(q.Get("tiv")),
		HazardLevel:       q.Get("hazard"),
		TreatyType:        q.Get("treaty"),
	})
}

func (s *Server) postLayering(w http.ResponseWriter, r *http.Request) {
	var req layeringRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	s.layer(w, req)
}

// postBatch accepts a batch file in YAML or JSON.
func (s *Server) postBatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	cfg, err := s.parser.Parse(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.engine.RunBatch(r.Context(), cfg)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}
