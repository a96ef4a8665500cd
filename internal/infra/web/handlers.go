package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"lakshya-career-assistant/internal/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// handleAIChat runs one coach round trip. The error path carries a
// keyword fallback so the client can still show something useful.
func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Message required"})
		return
	}

	reply, err := s.provider.Respond(r.Context(), msg)
	if err != nil {
		s.log.Warn().Err(err).Msg("coach provider failed")
		fallback, _ := s.fallback.Respond(r.Context(), msg)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":  false,
			"error":    err.Error(),
			"fallback": fallback,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"response":   reply,
		"timestamp":  float64(time.Now().UnixNano()) / 1e9,
		"user":       s.identity,
		"model_info": s.provider.Status(r.Context()),
	})
}

func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.provider.Status(r.Context()))
}

type searchParams struct {
	What         string   `json:"what"`
	Where        string   `json:"where"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	ContractType string   `json:"contract_type"`
	SortBy       string   `json:"sort_by"`
	Page         int      `json:"page"`
}

const perPage = 10

// handleJobSearch filters, sorts, and paginates the demo catalog.
func (s *Server) handleJobSearch(w http.ResponseWriter, r *http.Request) {
	var p searchParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid JSON body",
			"message": "An error occurred while searching for jobs",
		})
		return
	}
	if p.Page < 1 {
		p.Page = 1
	}

	filtered := filterJobs(demoCatalog(), p)
	sortJobs(filtered, p.SortBy)

	start := (p.Page - 1) * perPage
	end := start + perPage
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"jobs":         filtered[start:end],
		"count":        len(filtered),
		"current_page": p.Page,
		"total_pages":  (len(filtered) + perPage - 1) / perPage,
		"message":      jobCountMessage(len(filtered)),
	})
}

func filterJobs(jobs []model.Job, p searchParams) []model.Job {
	what := strings.ToLower(p.What)
	where := strings.ToLower(p.Where)
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if what != "" &&
			!strings.Contains(strings.ToLower(j.Title), what) &&
			!strings.Contains(strings.ToLower(j.Description), what) {
			continue
		}
		if where != "" && !strings.Contains(strings.ToLower(j.Location.Value), where) {
			continue
		}
		if p.SalaryMin != nil && (j.SalaryMin == nil || *j.SalaryMin < *p.SalaryMin) {
			continue
		}
		if p.SalaryMax != nil && (j.SalaryMax == nil || *j.SalaryMax > *p.SalaryMax) {
			continue
		}
		if p.ContractType != "" && j.ContractType != p.ContractType {
			continue
		}
		out = append(out, j)
	}
	return out
}

func sortJobs(jobs []model.Job, by string) {
	switch by {
	case "salary":
		sort.SliceStable(jobs, func(i, k int) bool {
			return salaryMax(jobs[i]) > salaryMax(jobs[k])
		})
	case "date":
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].Created > jobs[k].Created
		})
	}
}

func salaryMax(j model.Job) float64 {
	if j.SalaryMax == nil {
		return 0
	}
	return *j.SalaryMax
}

func jobCountMessage(n int) string {
	if n == 1 {
		return "Found 1 job matching your criteria"
	}
	return fmt.Sprintf("Found %d jobs matching your criteria", n)
}

func (s *Server) handleJobCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"categories": []map[string]any{
			{"id": "it-software", "name": "IT & Software", "count": 1250},
			{"id": "marketing", "name": "Marketing", "count": 890},
			{"id": "sales", "name": "Sales", "count": 756},
			{"id": "finance", "name": "Finance", "count": 634},
			{"id": "healthcare", "name": "Healthcare", "count": 523},
			{"id": "education", "name": "Education", "count": 445},
			{"id": "engineering", "name": "Engineering", "count": 387},
			{"id": "design", "name": "Design", "count": 298},
		},
	})
}
