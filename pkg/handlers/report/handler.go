package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/analytics"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc report.Service
}

func NewHandler(svc report.Service) *Handler {
	return &Handler{svc: svc}
}

// GetReport returns the full report. top_n overrides the configured ranking length.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings := h.svc.Settings()
	if topN, ok, err := intParam(r, "top_n"); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	} else if ok {
		settings.TopN = topN
	}

	rep, err := h.svc.Report(ctx, settings)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, r, adapters.MapReportDomainToApi(*rep))
}

func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	dimension := chi.URLParam(r, "dimension")

	n, _, err := intParam(r, "n")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	ranking, err := h.svc.Ranking(r.Context(), dimension, n)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, r, adapters.MapRankingDomainToApi(ranking))
}

func (h *Handler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	granularity := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("granularity")))
	if granularity == "" {
		granularity = report.GranularityYear
	}

	series, err := h.svc.Growth(r.Context(), granularity)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, r, adapters.MapGrowthSeriesDomainToApi(granularity, series))
}

func (h *Handler) GetSeasonality(w http.ResponseWriter, r *http.Request) {
	seasonality, err := h.svc.Seasonality(r.Context())
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, r, adapters.MapSeasonalityDomainToApi(seasonality))
}

func (h *Handler) GetConcentration(w http.ResponseWriter, r *http.Request) {
	settings := h.svc.Settings().Concentration()

	if k, ok, err := intParam(r, "k"); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	} else if ok {
		settings.TopK = k
	}

	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, errors.New("invalid 'threshold': expected a number"))
			return
		}
		settings.Threshold = threshold
	}

	concentration, err := h.svc.Concentration(r.Context(), r.URL.Query().Get("dimension"), settings)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, r, adapters.MapConcentrationDomainToApi(concentration))
}

func intParam(r *http.Request, name string) (int, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.New("invalid '" + name + "': expected an integer")
	}
	return v, true, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analytics.ErrUnknownDimension),
		errors.Is(err, analytics.ErrInvalidSettings),
		errors.Is(err, report.ErrUnknownGranularity):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingRequiredField),
		errors.Is(err, domain.ErrInvalidMeasure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := zerolog.Ctx(r.Context())
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		msg = http.StatusText(status)
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: msg}); err != nil {
		logger.Error().Err(err).Msg("failed to encode error response")
	}
}
