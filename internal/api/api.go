package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/pompput-sizer/internal/config"
	"github.com/thatsimonsguy/pompput-sizer/internal/datadog"
	"github.com/thatsimonsguy/pompput-sizer/internal/hydraulics"
	"github.com/thatsimonsguy/pompput-sizer/internal/model"
	"github.com/thatsimonsguy/pompput-sizer/internal/report"
	"github.com/thatsimonsguy/pompput-sizer/internal/tables"
)

// Server exposes the sizing engine over HTTP. Every request runs its own
// calculation against the shared immutable tables.
type Server struct {
	engine   *hydraulics.Engine
	rainfall *tables.RainfallTable
	fittings *tables.FittingTable
	config   *config.Config
}

type CalculateResponse struct {
	Result model.DesignResult `json:"result"`
	Lines  []string           `json:"lines"`
}

type DiameterRequest struct {
	FlowM3S       float64 `json:"flow_m3s"`
	MaxVelocityMS float64 `json:"max_velocity_ms"`
}

type DiameterResponse struct {
	MinDiameterM      float64 `json:"min_diameter_m"`
	MinDiameterMM     float64 `json:"min_diameter_mm"`
	NominalDiameterMM int     `json:"nominal_diameter_mm,omitempty"`
}

type FittingsResponse struct {
	Diameters []int                 `json:"diameters"`
	Fittings  []tables.FittingEntry `json:"fittings"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewServer(rainfall *tables.RainfallTable, fittings *tables.FittingTable, cfg *config.Config) *Server {
	return &Server{
		engine:   hydraulics.NewEngine(rainfall, fittings),
		rainfall: rainfall,
		fittings: fittings,
		config:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/calculate", s.handleCalculate)
	mux.HandleFunc("/api/diameter", s.handleDiameter)
	mux.HandleFunc("/api/tables/rainfall", s.handleRainfall)
	mux.HandleFunc("/api/tables/fittings", s.handleFittings)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Info().Str("address", addr).Msg("Starting REST API server")

	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var design model.Design
	if err := json.NewDecoder(r.Body).Decode(&design); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if design.MaxVelocity == 0 {
		design.MaxVelocity = s.config.DefaultMaxVelocity
	}

	res, err := s.engine.Evaluate(design)
	if err != nil {
		status := statusFor(err)
		log.Warn().Err(err).Str("design", design.Name).Int("status", status).Msg("Calculation rejected")
		s.writeError(w, status, err.Error())
		return
	}

	for _, a := range res.Advisories {
		log.Warn().Str("design", design.Name).Str("kind", string(a.Kind)).Msg(a.Message)
	}
	log.Info().
		Str("design", design.Name).
		Float64("buffer_m3", res.Buffer.BufferVolumeM3).
		Float64("head_loss_m", res.HeadLoss.TotalHeadLossM).
		Msg("Calculation served via API")
	datadog.RecordDesign(res, "source:api")

	s.writeJSON(w, http.StatusOK, CalculateResponse{
		Result: res,
		Lines:  report.Build(design, res).TextLines(),
	})
}

func (s *Server) handleDiameter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req DiameterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.MaxVelocityMS == 0 {
		req.MaxVelocityMS = s.config.DefaultMaxVelocity
	}

	d, err := hydraulics.RecommendDiameter(req.FlowM3S, req.MaxVelocityMS)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	resp := DiameterResponse{MinDiameterM: d, MinDiameterMM: report.Round(d*1000, 1)}
	if dn, ok := s.engine.NominalDiameterFor(d); ok {
		resp.NominalDiameterMM = dn
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRainfall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.rainfall.Entries())
}

func (s *Server) handleFittings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, FittingsResponse{
		Diameters: s.fittings.Diameters(),
		Fittings:  s.fittings.Entries(),
	})
}

func statusFor(err error) int {
	if errors.Is(err, hydraulics.ErrInvalidParameter) || errors.Is(err, hydraulics.ErrLookup) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
