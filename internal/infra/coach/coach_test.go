package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/ports/adapter"
)

func TestKeywordCoachBuckets(t *testing.T) {
	k := NewKeywordCoach("dev")
	ctx := context.Background()

	tests := []struct {
		message string
		want    string
	}{
		{"please review my resume", "resume"},
		{"looking for a new job", "job"},
		{"how do I negotiate my salary", "negotiation"},
		{"what skill should I learn next", "development"},
		{"hello there", "dev"},
	}
	for _, tc := range tests {
		got, err := k.Respond(ctx, tc.message)
		if err != nil {
			t.Fatalf("Respond(%q): %v", tc.message, err)
		}
		if !strings.Contains(strings.ToLower(got), strings.ToLower(tc.want)) {
			t.Errorf("Respond(%q) = %q, want mention of %q", tc.message, got, tc.want)
		}
	}

	if info := k.Status(ctx); info.Status != "offline" {
		t.Errorf("status = %q, want offline", info.Status)
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CAREER COACH RESPONSE: Do the thing.", "Do the thing."},
		{"ARIA: Networking matters", "Networking matters."},
		{"  Already clean!  ", "Already clean!"},
		{"Ends with question?", "Ends with question?"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := cleanReply(tc.in); got != tc.want {
			t.Errorf("cleanReply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type fixedProvider struct {
	reply string
	err   error
	info  adapter.ModelInfo
}

func (p *fixedProvider) Respond(ctx context.Context, message string) (string, error) {
	return p.reply, p.err
}

func (p *fixedProvider) Status(ctx context.Context) adapter.ModelInfo { return p.info }

func TestCascadeFallsThrough(t *testing.T) {
	log := zerolog.Nop()
	c := NewCascade(&log,
		&fixedProvider{err: errors.New("down")},
		&fixedProvider{reply: "from second"},
	)

	got, err := c.Respond(context.Background(), "hi")
	if err != nil || got != "from second" {
		t.Fatalf("Respond = (%q, %v)", got, err)
	}
}

func TestCascadeAllFail(t *testing.T) {
	log := zerolog.Nop()
	c := NewCascade(&log, &fixedProvider{err: errors.New("down")})

	if _, err := c.Respond(context.Background(), "hi"); !errors.Is(err, domain.ErrCoachUnavailable) {
		t.Fatalf("Respond = %v, want ErrCoachUnavailable", err)
	}
}

func TestCascadeStatusPrefersOnline(t *testing.T) {
	log := zerolog.Nop()
	c := NewCascade(&log,
		&fixedProvider{info: adapter.ModelInfo{Status: "offline"}},
		&fixedProvider{info: adapter.ModelInfo{Status: "online", Model: "m2"}},
		&fixedProvider{info: adapter.ModelInfo{Status: "offline"}},
	)

	info := c.Status(context.Background())
	if info.Status != "online" || info.Model != "m2" {
		t.Errorf("status = %+v, want the online provider", info)
	}
}

func TestOllamaCoachRespond(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		case "/api/generate":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["stream"] != false {
				t.Errorf("stream = %v, want false", body["stream"])
			}
			_ = json.NewEncoder(w).Encode(map[string]string{
				"response": "ARIA: Polish your portfolio",
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	o := NewOllamaCoach(srv.URL, "test-model")
	got, err := o.Respond(context.Background(), "portfolio tips?")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if got != "Polish your portfolio." {
		t.Errorf("reply = %q", got)
	}
	if info := o.Status(context.Background()); info.Status != "online" {
		t.Errorf("status = %+v", info)
	}
}

func TestOllamaCoachUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	o := NewOllamaCoach(srv.URL, "test-model")
	if _, err := o.Respond(context.Background(), "hi"); !errors.Is(err, domain.ErrCoachUnavailable) {
		t.Fatalf("Respond = %v, want ErrCoachUnavailable", err)
	}
	if info := o.Status(context.Background()); info.Status != "offline" {
		t.Errorf("status = %+v", info)
	}
}

func TestCannedAnalysisDeterministic(t *testing.T) {
	a := NewCannedAnalysis()
	ctx := context.Background()

	first, err := a.Analyze(ctx, "resume.pdf")
	if err != nil || first == "" {
		t.Fatalf("Analyze = (%q, %v)", first, err)
	}
	second, _ := a.Analyze(ctx, "resume.pdf")
	if first != second {
		t.Error("same filename should yield the same summary")
	}
}
