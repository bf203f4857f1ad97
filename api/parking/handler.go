// Package parking exposes the allocation engine over HTTP. The handlers are
// a thin adapter: they translate requests into engine operations and engine
// errors into status codes, nothing more.
package parking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openlot/parkd/core/analytics"
	"github.com/openlot/parkd/core/model"
	coreparking "github.com/openlot/parkd/core/parking"
)

// Engine is the subset of the allocation engine the API needs.
type Engine interface {
	Park(v model.Vehicle) (coreparking.ParkResult, error)
	Retrieve(vehicleID string) (coreparking.RetrieveResult, error)
	Occupancy() model.OccupancySnapshot
	ActiveSessions() []model.Ticket
	ClosedSessions() []model.Ticket
	StrategyName() string
}

type parkRequest struct {
	VehicleID string `json:"vehicle_id"`
	Size      string `json:"size"`
	Charging  bool   `json:"charging"`
}

type retrieveRequest struct {
	VehicleID string `json:"vehicle_id"`
}

type sessionResponse struct {
	Ticket     model.Ticket `json:"ticket"`
	SinkErrors []string     `json:"sink_errors,omitempty"`
}

type occupancyResponse struct {
	Overall model.OccupancyCount            `json:"overall"`
	BySize  map[string]model.OccupancyCount `json:"by_size"`
	Rate    float64                         `json:"rate"`
}

type summaryResponse struct {
	Occupancy occupancyResponse      `json:"occupancy"`
	Strategy  string                 `json:"pricing_strategy"`
	Active    int                    `json:"active_sessions"`
	Sessions  analytics.SessionStats `json:"sessions"`
}

// NewHandler returns the HTTP adapter for the engine.
func NewHandler(e Engine) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/park", func(w http.ResponseWriter, r *http.Request) {
		handlePark(e, w, r)
	})
	mux.HandleFunc("/api/retrieve", func(w http.ResponseWriter, r *http.Request) {
		handleRetrieve(e, w, r)
	})
	mux.HandleFunc("/api/occupancy", func(w http.ResponseWriter, r *http.Request) {
		handleOccupancy(e, w, r)
	})
	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		handleSummary(e, w, r)
	})
	return mux
}

func handlePark(e Engine, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req parkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := model.ParseSpaceSize(req.Size)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := e.Park(model.Vehicle{ID: req.VehicleID, Size: size, Charging: req.Charging})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Ticket: res.Ticket, SinkErrors: errStrings(res.SinkErrors)})
}

func handleRetrieve(e Engine, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := e.Retrieve(req.VehicleID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Ticket: res.Ticket, SinkErrors: errStrings(res.SinkErrors)})
}

func handleOccupancy(e Engine, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, toOccupancyResponse(e.Occupancy()))
}

func handleSummary(e Engine, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Occupancy: toOccupancyResponse(e.Occupancy()),
		Strategy:  e.StrategyName(),
		Active:    len(e.ActiveSessions()),
		Sessions:  analytics.Compute(e.ClosedSessions()),
	})
}

func toOccupancyResponse(snap model.OccupancySnapshot) occupancyResponse {
	bySize := make(map[string]model.OccupancyCount, len(snap.BySize))
	for size, c := range snap.BySize {
		bySize[size.String()] = c
	}
	return occupancyResponse{Overall: snap.Overall, BySize: bySize, Rate: snap.Rate()}
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coreparking.ErrNoActiveSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, coreparking.ErrVehicleAlreadyParked),
		errors.Is(err, coreparking.ErrNoSpaceAvailable):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func errStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
