package dto

type ApplicationStats struct {
	Total      int64 `json:"total"`
	Sent       int64 `json:"sent"`
	Rejected   int64 `json:"rejected"`
	Accepted   int64 `json:"accepted"`
	Interviews int64 `json:"interviews"`
	NoResponse int64 `json:"noResponse"`
}

// SuccessRate is the share of applications that reached an interview or an offer, in percent.
func (s ApplicationStats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Accepted+s.Interviews) / float64(s.Total) * 100
}

func (s ApplicationStats) RejectionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Rejected) / float64(s.Total) * 100
}

type ApplicationStatsResponse struct {
	ApplicationStats
	SuccessRate   float64 `json:"successRate"`
	RejectionRate float64 `json:"rejectionRate"`
}

func NewApplicationStatsResponse(stats ApplicationStats) ApplicationStatsResponse {
	return ApplicationStatsResponse{
		ApplicationStats: stats,
		SuccessRate:      stats.SuccessRate(),
		RejectionRate:    stats.RejectionRate(),
	}
}
