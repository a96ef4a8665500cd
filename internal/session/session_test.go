package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"lakshya-career-assistant/internal/domain"
	"lakshya-career-assistant/internal/domain/model"
	"lakshya-career-assistant/internal/domain/ports/adapter"
	"lakshya-career-assistant/internal/domain/ports/view"
	"lakshya-career-assistant/internal/infra/storage"
)

// eventLog records view and storage activity in arrival order so tests
// can assert render-before-persist sequencing.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type logView struct{ log *eventLog }

func (v *logView) AppendTurn(t model.Turn) {
	v.log.add(fmt.Sprintf("render:%s:%s", t.Role, t.Text))
}
func (v *logView) SetTyping(active bool) { v.log.add(fmt.Sprintf("typing:%t", active)) }
func (v *logView) ShowError(msg string)  { v.log.add("error:" + msg) }

type logStore struct {
	inner *storage.MemoryStore
	log   *eventLog
}

func (s *logStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, key)
}

func (s *logStore) Set(ctx context.Context, key string, value []byte) error {
	s.log.add("persist")
	return s.inner.Set(ctx, key, value)
}

func (s *logStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

type stubCoach struct {
	reply adapter.CoachReply
	err   error
}

func (c *stubCoach) Send(ctx context.Context, message string) (adapter.CoachReply, error) {
	return c.reply, c.err
}

type stubAnalysis struct {
	summary string
	err     error
}

func (a *stubAnalysis) Analyze(ctx context.Context, filename string) (string, error) {
	return a.summary, a.err
}

// stubTr renders deterministic strings so tests can tell which language
// and key a presentation string came from.
type stubTr struct{}

func (stubTr) T(lang model.Language, key string, args ...interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf("%s/%s:%v", lang, key, args)
	}
	return fmt.Sprintf("%s/%s", lang, key)
}

type fixture struct {
	sess  *Session
	log   *eventLog
	store *storage.MemoryStore
}

func newFixture(t *testing.T, coach adapter.CoachAPI, confirm bool) *fixture {
	t.Helper()
	log := &eventLog{}
	mem := storage.NewMemoryStore()
	logger := zerolog.Nop()
	n := 0
	sess := New(
		"alice",
		&logStore{inner: mem, log: log},
		coach,
		&stubAnalysis{summary: "looks solid"},
		&logView{log: log},
		view.ConfirmFunc(func(string) bool { return confirm }),
		stubTr{},
		&logger,
		Options{
			NewID:       func() string { n++; return fmt.Sprintf("t-%d", n) },
			UploadDelay: time.Millisecond,
		},
	)
	return &fixture{sess: sess, log: log, store: mem}
}

func (f *fixture) persisted(t *testing.T) model.SessionState {
	t.Helper()
	data, err := f.store.Get(context.Background(), f.sess.StorageKey())
	if err != nil {
		t.Fatalf("read persisted state: %v", err)
	}
	var s model.SessionState
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("decode persisted state: %v", err)
	}
	return s
}

func roles(ts []model.Turn) []model.Role {
	out := make([]model.Role, len(ts))
	for i, t := range ts {
		out[i] = t.Role
	}
	return out
}

func TestSendSuccess(t *testing.T) {
	f := newFixture(t, &stubCoach{reply: adapter.CoachReply{Success: true, Response: "hi"}}, true)

	if err := f.sess.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	st := f.sess.State()
	if len(st.Transcript) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(st.Transcript))
	}
	if st.Transcript[0].Role != model.RoleUser || st.Transcript[0].Text != "hello" {
		t.Errorf("turn 0 = %+v", st.Transcript[0])
	}
	if st.Transcript[1].Role != model.RoleAI || st.Transcript[1].Text != "hi" {
		t.Errorf("turn 1 = %+v", st.Transcript[1])
	}

	if got := f.persisted(t); len(got.Transcript) != 2 {
		t.Errorf("persisted transcript length = %d, want 2", len(got.Transcript))
	}

	want := []string{
		"render:user:hello",
		"typing:true",
		"persist",
		"typing:false",
		"render:ai:hi",
		"persist",
	}
	if got := f.log.list(); !equalStrings(got, want) {
		t.Errorf("event order = %v, want %v", got, want)
	}
}

func TestSendBlankRejected(t *testing.T) {
	f := newFixture(t, &stubCoach{reply: adapter.CoachReply{Success: true, Response: "unused"}}, true)

	for _, text := range []string{"", "   ", "\n\t"} {
		if err := f.sess.Send(context.Background(), text); !errors.Is(err, domain.ErrEmptyMessage) {
			t.Errorf("Send(%q) = %v, want ErrEmptyMessage", text, err)
		}
	}
	if st := f.sess.State(); len(st.Transcript) != 0 {
		t.Errorf("transcript length = %d, want 0", len(st.Transcript))
	}
	if got := f.log.list(); len(got) != 0 {
		t.Errorf("events = %v, want none", got)
	}
}

func TestSendServerFallback(t *testing.T) {
	f := newFixture(t, &stubCoach{reply: adapter.CoachReply{Success: false, Fallback: "try later"}}, true)

	if err := f.sess.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	st := f.sess.State()
	last, _ := st.LastTurn()
	if last.Role != model.RoleAI || last.Text != "try later" {
		t.Errorf("last turn = %+v, want server fallback", last)
	}
}

func TestSendTransportErrorUsesLocalizedRetry(t *testing.T) {
	f := newFixture(t, &stubCoach{err: errors.New("connection refused")}, true)

	if err := f.sess.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	st := f.sess.State()
	last, _ := st.LastTurn()
	if last.Text != "en/degraded_retry" {
		t.Errorf("last turn text = %q, want localized retry", last.Text)
	}
}

func TestInitFreshRendersWelcomeUnpersisted(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)

	f.sess.Init(context.Background())

	got := f.log.list()
	want := []string{"render:ai:en/welcome", "persist"}
	if !equalStrings(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
	if st := f.persisted(t); len(st.Transcript) != 0 {
		t.Errorf("persisted transcript length = %d, want 0 (welcome is render-only)", len(st.Transcript))
	}
}

func TestInitRestoresTranscriptAndLanguage(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)
	prior := model.SessionState{
		Identity: "alice",
		Transcript: []model.Turn{
			{ID: "a", Role: model.RoleUser, Text: "old question"},
			{ID: "b", Role: model.RoleAI, Text: "old answer"},
		},
		Language: model.LangHindi,
	}
	data, _ := json.Marshal(prior)
	if err := f.store.Set(context.Background(), f.sess.StorageKey(), data); err != nil {
		t.Fatal(err)
	}

	f.sess.Init(context.Background())

	st := f.sess.State()
	if want := []model.Role{model.RoleUser, model.RoleAI}; !equalRoles(roles(st.Transcript), want) {
		t.Errorf("roles = %v, want %v", roles(st.Transcript), want)
	}
	if st.Language != model.LangHindi {
		t.Errorf("language = %q, want hi", st.Language)
	}
	for _, e := range f.log.list() {
		if strings.Contains(e, "welcome") {
			t.Errorf("welcome rendered on non-empty restore: %v", f.log.list())
		}
	}
}

func TestInitMalformedStateStartsEmpty(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)
	if err := f.store.Set(context.Background(), f.sess.StorageKey(), []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	f.sess.Init(context.Background())

	if st := f.sess.State(); len(st.Transcript) != 0 {
		t.Errorf("transcript length = %d, want 0", len(st.Transcript))
	}
	got := f.log.list()
	if len(got) == 0 || got[0] != "render:ai:en/welcome" {
		t.Errorf("events = %v, want welcome first", got)
	}
}

func TestClearConfirmed(t *testing.T) {
	f := newFixture(t, &stubCoach{reply: adapter.CoachReply{Success: true, Response: "hi"}}, true)
	if err := f.sess.Send(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}

	if err := f.sess.Clear(context.Background()); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if st := f.persisted(t); len(st.Transcript) != 0 {
		t.Errorf("persisted transcript length = %d, want 0", len(st.Transcript))
	}
	events := f.log.list()
	welcomes := 0
	for _, e := range events {
		if e == "render:ai:en/welcome" {
			welcomes++
		}
	}
	if welcomes != 1 {
		t.Errorf("welcome renders after clear = %d, want 1 (events %v)", welcomes, events)
	}
}

func TestClearDeclined(t *testing.T) {
	f := newFixture(t, &stubCoach{reply: adapter.CoachReply{Success: true, Response: "hi"}}, false)
	if err := f.sess.Send(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}

	if err := f.sess.Clear(context.Background()); !errors.Is(err, domain.ErrNotConfirmed) {
		t.Fatalf("Clear = %v, want ErrNotConfirmed", err)
	}
	if st := f.sess.State(); len(st.Transcript) != 2 {
		t.Errorf("transcript length = %d, want 2 (unchanged)", len(st.Transcript))
	}
}

func TestChangeLanguageAnnouncesInNewLanguage(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)

	f.sess.ChangeLanguage(context.Background(), "es")

	st := f.sess.State()
	if st.Language != model.LangSpanish {
		t.Errorf("language = %q, want es", st.Language)
	}
	last, ok := st.LastTurn()
	if !ok || last.Role != model.RoleSystem || last.Text != "es/language_changed" {
		t.Errorf("last turn = %+v, want system notice in es", last)
	}
}

func TestChangeLanguageUnknownFallsBackToEnglish(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)

	f.sess.ChangeLanguage(context.Background(), "klingon")

	if st := f.sess.State(); st.Language != model.LangEnglish {
		t.Errorf("language = %q, want en", st.Language)
	}
}

func TestExport(t *testing.T) {
	f := newFixture(t, &stubCoach{reply: adapter.CoachReply{Success: true, Response: "hi"}}, true)
	if err := f.sess.Send(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}

	art, err := f.sess.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(art.Filename, "chat_history_alice_") || !strings.HasSuffix(art.Filename, ".json") {
		t.Errorf("filename = %q", art.Filename)
	}
	if art.ContentType != "application/json" {
		t.Errorf("content type = %q", art.ContentType)
	}

	var env model.ExportEnvelope
	if err := json.Unmarshal(art.Data, &env); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if env.User != "alice" || len(env.Messages) != 2 || env.ExportedAt == "" {
		t.Errorf("envelope = %+v", env)
	}

	// Export is a pure read.
	if st := f.sess.State(); len(st.Transcript) != 2 {
		t.Errorf("transcript length = %d after export, want 2", len(st.Transcript))
	}
}

func TestHandleAttachment(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)

	if err := f.sess.HandleAttachment(context.Background(), "resume.pdf"); err != nil {
		t.Fatalf("HandleAttachment: %v", err)
	}

	st := f.sess.State()
	if want := []model.Role{model.RoleSystem, model.RoleAI}; !equalRoles(roles(st.Transcript), want) {
		t.Fatalf("roles = %v, want %v", roles(st.Transcript), want)
	}
	if !strings.Contains(st.Transcript[0].Text, "resume.pdf") {
		t.Errorf("upload notice = %q, want filename included", st.Transcript[0].Text)
	}
	if st.Transcript[1].Text != "looks solid" {
		t.Errorf("analysis turn = %q", st.Transcript[1].Text)
	}
}

func TestHandleAttachmentAnalysisFailure(t *testing.T) {
	log := &eventLog{}
	mem := storage.NewMemoryStore()
	logger := zerolog.Nop()
	sess := New(
		"alice",
		&logStore{inner: mem, log: log},
		&stubCoach{},
		&stubAnalysis{err: errors.New("backend gone")},
		&logView{log: log},
		view.ConfirmFunc(func(string) bool { return true }),
		stubTr{},
		&logger,
		Options{UploadDelay: time.Millisecond},
	)

	if err := sess.HandleAttachment(context.Background(), "cv.docx"); err != nil {
		t.Fatalf("HandleAttachment: %v", err)
	}
	sessState := sess.State()
	last, _ := sessState.LastTurn()
	if last.Text != "en/degraded_retry" {
		t.Errorf("last turn = %q, want localized retry", last.Text)
	}
}

func TestHandleAttachmentCancelled(t *testing.T) {
	f := newFixture(t, &stubCoach{}, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.sess.HandleAttachment(ctx, "resume.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("HandleAttachment = %v, want context.Canceled", err)
	}
	// The upload notice lands before cancellation is observed.
	st := f.sess.State()
	if len(st.Transcript) != 1 || st.Transcript[0].Role != model.RoleSystem {
		t.Errorf("transcript = %+v, want only the upload notice", st.Transcript)
	}
}

// gatedCoach blocks each Send until the test releases a reply for it,
// which lets tests overlap calls deliberately.
type gatedCoach struct {
	mu      sync.Mutex
	gates   map[string]chan adapter.CoachReply
	started chan string
}

func newGatedCoach() *gatedCoach {
	return &gatedCoach{
		gates:   make(map[string]chan adapter.CoachReply),
		started: make(chan string, 8),
	}
}

func (c *gatedCoach) Send(ctx context.Context, message string) (adapter.CoachReply, error) {
	ch := make(chan adapter.CoachReply, 1)
	c.mu.Lock()
	c.gates[message] = ch
	c.mu.Unlock()
	c.started <- message
	return <-ch, nil
}

func (c *gatedCoach) release(message, response string) {
	c.mu.Lock()
	ch := c.gates[message]
	c.mu.Unlock()
	ch <- adapter.CoachReply{Success: true, Response: response}
}

func TestRepliesApplyInIssuanceOrder(t *testing.T) {
	coach := newGatedCoach()
	f := newFixture(t, coach, true)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = f.sess.Send(context.Background(), "first")
	}()
	<-coach.started
	go func() {
		defer wg.Done()
		_ = f.sess.Send(context.Background(), "second")
	}()
	<-coach.started

	// The later request finishes first; its turn must still land second.
	coach.release("second", "answer two")
	coach.release("first", "answer one")
	wg.Wait()

	st := f.sess.State()
	var texts []string
	for _, turn := range st.Transcript {
		if turn.Role == model.RoleAI {
			texts = append(texts, turn.Text)
		}
	}
	if !equalStrings(texts, []string{"answer one", "answer two"}) {
		t.Errorf("ai turn order = %v, want issuance order", texts)
	}

	// Last-response-wins: the indicator must end hidden.
	events := f.log.list()
	lastTyping := ""
	for _, e := range events {
		if strings.HasPrefix(e, "typing:") {
			lastTyping = e
		}
	}
	if lastTyping != "typing:false" {
		t.Errorf("final typing event = %q, want typing:false (events %v)", lastTyping, events)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalRoles(a, b []model.Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
