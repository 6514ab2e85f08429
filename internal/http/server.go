package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/renoveta/badrum-estimator/internal/domain"
	"github.com/renoveta/badrum-estimator/internal/estimate"
)

type Server struct {
	Options *estimate.Options
	Repo    *EstimatesRepo
}

func NewServer(opts *estimate.Options, repo *EstimatesRepo) *Server {
	return &Server{Options: opts, Repo: repo}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/estimate", s.handleEstimate)
	mux.HandleFunc("/estimates", s.handleEstimatesList)
	mux.HandleFunc("/estimates/", s.handleEstimateGetByID)
	mux.HandleFunc("/demo", s.handleDemo)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type EstimateResponse struct {
	EstimateID string                  `json:"estimate_id"`
	CreatedAt  string                  `json:"created_at"`
	Cached     bool                    `json:"cached"`
	Profile    string                  `json:"profile"`
	Flags      []string                `json:"flags"`
	MappingLog []string                `json:"mapping_log,omitempty"`
	Estimate   estimate.ClientEstimate `json:"estimate"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var contract domain.Contract
	if err := json.NewDecoder(r.Body).Decode(&contract); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	hash := contractHash(contract)

	// Idempotency: an identical contract returns the stored estimate.
	if s.Repo != nil {
		if resp, ok := s.Repo.FindCached(hash); ok {
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	res, err := estimate.Evaluate(contract, s.Options)
	if err != nil {
		http.Error(w, "pricing failed", http.StatusBadGateway)
		return
	}

	resp := EstimateResponse{
		EstimateID: res.EstimateID,
		CreatedAt:  res.GeneratedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		Profile:    res.Profile,
		Flags:      res.Flags,
		MappingLog: res.MappingLog,
		Estimate:   res.ClientEstimate,
	}

	if s.Repo != nil {
		if err := s.Repo.Save(hash, contract, res); err != nil {
			http.Error(w, "failed to persist estimate", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type EstimatesListResponse struct {
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Total  int               `json:"total"`
	Items  []EstimateSummary `json:"items"`
}

func (s *Server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Repo == nil {
		writeJSON(w, http.StatusOK, EstimatesListResponse{Items: []EstimateSummary{}})
		return
	}

	limit, offset := parseLimitOffset(r, 20, 0)
	q := r.URL.Query()
	minTotal, _ := strconv.Atoi(q.Get("min_total"))
	maxTotal, _ := strconv.Atoi(q.Get("max_total"))

	items, total := s.Repo.List(ListParams{
		Limit:    limit,
		Offset:   offset,
		Profile:  q.Get("profile"),
		Quality:  q.Get("quality"),
		MinTotal: minTotal,
		MaxTotal: maxTotal,
		Sort:     q.Get("sort"),
	})

	writeJSON(w, http.StatusOK, EstimatesListResponse{
		Limit:  limit,
		Offset: offset,
		Total:  total,
		Items:  items,
	})
}

func (s *Server) handleEstimateGetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.URL.Path[len("/estimates/"):]
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing_id"})
		return
	}
	if s.Repo == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}

	resp, ok, err := s.Repo.Get(id)
	if err != nil {
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDemo returns a worked example contract that can be posted straight
// to /estimate.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	length, width, area, height := 2.2, 3.1, 6.82, 2.4
	year := 1972
	sample := domain.Contract{
		Analysis: domain.Analysis{
			RoomType:           "bathroom",
			RoomTypeConfidence: 0.93,
			SizeBucket:         "6_to_10_sqm",
			SizeConfidence:     0.71,
			DetectedFixtures:   []string{"toilet", "vanity", "shower"},
			ImageQuality:       "ok",
			Confidence:         0.82,
		},
		Overrides: domain.Overrides{SizeBucket: "6_to_10_sqm", UserSelected: true},
		Outcome: domain.Outcome{
			ShowerType:   "walk_in",
			Bathtub:      "none",
			Toilet:       "replace_wall_hung",
			Vanity:       "replace",
			WallFinish:   "tiles_all_walls",
			FloorFinish:  "tiles",
			CeilingType:  "paint",
			LayoutChange: "no",
			NicheCount:   1,
			FloorHeating: "yes",
		},
		MeasurementOverride: &domain.MeasurementOverride{
			LengthM: &length, WidthM: &width, AreaM2: &area, CeilingHeight: &height,
		},
		SiteConditions: &domain.SiteConditions{
			FloorElevator:         "apt_no_elevator_1_2",
			ParkingDistance:       "close",
			PermitsBRF:            "permit_required",
			OccupiedDuring:        "yes",
			HazardousMaterials:    "none",
			CommonAreaProtection:  "required",
			WaterShutoff:          "building_shared",
			ElectricalPanel:       "in_apartment",
			WasteDisposal:         "carry_out",
			WorkingHours:          "unrestricted",
			NeighborNotice:        "required",
			MoldSuspected:         "no",
			DoorWidth:             "standard",
			StorageSpace:          "available",
			PetsAtHome:            "no",
			ConcurrentRenovations: "no",
		},
		BuildingYear: &year,
	}
	writeJSON(w, http.StatusOK, sample)
}

// contractHash is the idempotency key: sha256 over the contract's canonical
// JSON encoding.
func contractHash(c domain.Contract) string {
	b, _ := json.Marshal(c)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
