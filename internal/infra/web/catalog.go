package web

import "lakshya-career-assistant/internal/domain/model"

func f64(v float64) *float64 { return &v }

func display(s string) model.DisplayName {
	return model.DisplayName{Value: s, Present: true}
}

func category(s string) model.Category {
	return model.Category{Label: s, Present: true}
}

// demoCatalog returns the built-in listings served when no upstream job
// board is wired in. Returned fresh each call so sorting never mutates
// shared state.
func demoCatalog() []model.Job {
	return []model.Job{
		{
			ID:           "demo-1",
			Title:        "Senior Software Engineer",
			Company:      display("TechCorp Solutions"),
			Location:     display("Bangalore, India"),
			Category:     category("IT Jobs"),
			Description:  "Build scalable backend services in a fast-moving product team. Strong fundamentals in distributed systems expected.",
			SalaryMin:    f64(1500000),
			SalaryMax:    f64(2500000),
			ContractType: "permanent",
			Created:      "2025-06-10T09:00:00",
			RedirectURL:  "https://example.com/jobs/demo-1",
		},
		{
			ID:           "demo-2",
			Title:        "UI/UX Designer",
			Company:      display("Design Studio Pro"),
			Location:     display("Mumbai, India"),
			Category:     category("Design Jobs"),
			Description:  "Own the design system for our consumer app. Portfolio with shipped mobile work required.",
			SalaryMin:    f64(800000),
			SalaryMax:    f64(1400000),
			ContractType: "permanent",
			Created:      "2025-06-12T11:30:00",
			RedirectURL:  "https://example.com/jobs/demo-2",
		},
		{
			ID:           "demo-3",
			Title:        "Data Analyst",
			Company:      display("Analytics Inc"),
			Location:     display("Hyderabad, India"),
			Category:     category("IT Jobs"),
			Description:  "Turn raw product data into dashboards and decisions. SQL and Python day to day.",
			SalaryMin:    f64(700000),
			SalaryMax:    f64(1200000),
			ContractType: "permanent",
			Created:      "2025-06-08T14:15:00",
			RedirectURL:  "https://example.com/jobs/demo-3",
		},
		{
			ID:           "demo-4",
			Title:        "Digital Marketing Manager",
			Company:      display("Growth Co"),
			Location:     display("Delhi, India"),
			Category:     category("Marketing Jobs"),
			Description:  "Lead paid and organic growth across channels. Hands-on with campaign analytics.",
			SalaryMin:    f64(900000),
			SalaryMax:    f64(1600000),
			ContractType: "permanent",
			Created:      "2025-06-13T08:45:00",
			RedirectURL:  "https://example.com/jobs/demo-4",
		},
		{
			ID:           "demo-5",
			Title:        "Product Manager",
			Company:      display("TechCorp Solutions"),
			Location:     display("Pune, India"),
			Category:     category("IT Jobs"),
			Description:  "Drive roadmap for the hiring platform. Work across engineering, design, and sales.",
			SalaryMin:    f64(1800000),
			SalaryMax:    f64(3000000),
			ContractType: "permanent",
			Created:      "2025-06-11T16:20:00",
			RedirectURL:  "https://example.com/jobs/demo-5",
		},
		{
			ID:           "demo-6",
			Title:        "Frontend Developer (Contract)",
			Company:      display("Design Studio Pro"),
			Location:     display("Remote, India"),
			Category:     category("IT Jobs"),
			Description:  "Six month engagement building accessible web UI. React experience preferred.",
			SalaryMin:    f64(600000),
			SalaryMax:    f64(1000000),
			ContractType: "contract",
			Created:      "2025-06-09T10:00:00",
			RedirectURL:  "https://example.com/jobs/demo-6",
		},
	}
}
