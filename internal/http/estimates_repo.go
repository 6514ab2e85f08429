package httpapi

import (
	"encoding/json"
	"time"

	"github.com/renoveta/badrum-estimator/internal/domain"
	"github.com/renoveta/badrum-estimator/internal/estimate"
	"github.com/renoveta/badrum-estimator/internal/storage"
)

// ListParams are the query filters for GET /estimates.
type ListParams struct {
	Limit    int
	Offset   int
	Profile  string
	Quality  string
	MinTotal int
	MaxTotal int
	Sort     string // total_asc | total_desc | "" (newest first)
}

// EstimateSummary is the list-view row.
type EstimateSummary struct {
	ID             string    `json:"id"`
	Profile        string    `json:"profile"`
	Quality        string    `json:"estimate_quality"`
	ConfidenceTier string    `json:"confidence_tier"`
	GrandTotalSEK  int       `json:"grand_total_sek"`
	CreatedAt      time.Time `json:"created_at"`
}

// EstimatesRepo adapts the sqlite store to the handler contract. Repository
// errors surface as empty results on the list path; the handlers have no
// error slot there.
type EstimatesRepo struct {
	Store *storage.SQLiteStore
}

func (r *EstimatesRepo) List(p ListParams) ([]EstimateSummary, int) {
	if r == nil || r.Store == nil {
		return nil, 0
	}

	rows, total, err := r.Store.ListEstimatesFiltered(
		p.Limit, p.Offset, p.Profile, p.Quality, p.MinTotal, p.MaxTotal, p.Sort,
	)
	if err != nil {
		return nil, 0
	}

	out := make([]EstimateSummary, 0, len(rows))
	for _, e := range rows {
		out = append(out, EstimateSummary{
			ID:             e.ID,
			Profile:        e.Profile,
			Quality:        e.Quality,
			ConfidenceTier: e.Tier,
			GrandTotalSEK:  e.GrandTotalSEK,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out, total
}

func (r *EstimatesRepo) Get(id string) (EstimateResponse, bool, error) {
	if r == nil || r.Store == nil {
		return EstimateResponse{}, false, nil
	}
	stored, ok, err := r.Store.GetEstimate(id)
	if err != nil || !ok {
		return EstimateResponse{}, false, err
	}
	return toResponse(stored, false), true, nil
}

// FindCached returns the stored response for an identical contract, marked
// as cached.
func (r *EstimatesRepo) FindCached(hash string) (EstimateResponse, bool) {
	if r == nil || r.Store == nil {
		return EstimateResponse{}, false
	}
	stored, ok, err := r.Store.FindByContractHash(hash)
	if err != nil || !ok {
		return EstimateResponse{}, false
	}
	return toResponse(stored, true), true
}

func (r *EstimatesRepo) Save(hash string, contract domain.Contract, res estimate.Result) error {
	if r == nil || r.Store == nil {
		return nil
	}
	contractJSON, err := json.Marshal(contract)
	if err != nil {
		return err
	}
	estimateJSON, err := json.Marshal(res.ClientEstimate)
	if err != nil {
		return err
	}
	return r.Store.SaveEstimate(storage.StoredEstimate{
		ID:            res.EstimateID,
		ContractHash:  hash,
		Profile:       res.Profile,
		Quality:       res.ClientEstimate.EstimateQuality,
		Tier:          res.ClientEstimate.ConfidenceTier,
		GrandTotalSEK: res.ClientEstimate.Totals.GrandTotalSEK,
		CreatedAt:     res.GeneratedAt,
		ContractJSON:  string(contractJSON),
		EstimateJSON:  string(estimateJSON),
	})
}

func toResponse(stored storage.StoredEstimate, cached bool) EstimateResponse {
	var ce estimate.ClientEstimate
	_ = json.Unmarshal([]byte(stored.EstimateJSON), &ce)
	return EstimateResponse{
		EstimateID: stored.ID,
		CreatedAt:  stored.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		Cached:     cached,
		Profile:    stored.Profile,
		Estimate:   ce,
	}
}
