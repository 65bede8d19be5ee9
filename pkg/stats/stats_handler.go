package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Acefayad2/CRM-Portal/internal/rest"
)

type DailyActivityDTO struct {
	Date     string `json:"date"`
	Calls    int    `json:"calls"`
	Texts    int    `json:"texts"`
	Emails   int    `json:"emails"`
	Meetings int    `json:"meetings"`
	Total    int    `json:"total"`
}

type StageCountDTO struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type ActivitySummaryDTO struct {
	StartDate     time.Time          `json:"startDate"`
	EndDate       time.Time          `json:"endDate"`
	Days          []DailyActivityDTO `json:"days"`
	TotalCalls    int                `json:"totalCalls"`
	TotalTexts    int                `json:"totalTexts"`
	TotalEmails   int                `json:"totalEmails"`
	TotalMeetings int                `json:"totalMeetings"`
	TotalContacts int                `json:"totalContacts"`
	Pipeline      []StageCountDTO    `json:"pipeline"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

func (handler *StatsHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	fromDateString := r.URL.Query().Get("fromDate")
	toDateString := r.URL.Query().Get("toDate")
	fromDate, err := time.Parse(time.RFC3339, fromDateString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid fromDate format",
			Details: "fromDate must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}
	toDate, err := time.Parse(time.RFC3339, toDateString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid toDate format",
			Details: "toDate must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}
	stats, err := handler.statsService.GetActivity(r.Context(), fromDate, toDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(convertToJsonResponse(&stats)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func convertToJsonResponse(stats *ActivitySummary) *ActivitySummaryDTO {
	days := make([]DailyActivityDTO, 0, len(stats.Days))
	for _, day := range stats.Days {
		days = append(days, DailyActivityDTO{
			Date:     day.Date.Format("2006-01-02"),
			Calls:    day.Calls,
			Texts:    day.Texts,
			Emails:   day.Emails,
			Meetings: day.Meetings,
			Total:    day.Total,
		})
	}
	pipeline := make([]StageCountDTO, 0, len(stats.Pipeline))
	for _, stage := range stats.Pipeline {
		pipeline = append(pipeline, StageCountDTO{Stage: string(stage.Stage), Count: stage.Count})
	}
	return &ActivitySummaryDTO{
		StartDate:     stats.StartDate,
		EndDate:       stats.EndDate,
		Days:          days,
		TotalCalls:    stats.TotalCalls,
		TotalTexts:    stats.TotalTexts,
		TotalEmails:   stats.TotalEmails,
		TotalMeetings: stats.TotalMeetings,
		TotalContacts: stats.TotalContacts,
		Pipeline:      pipeline,
	}
}
