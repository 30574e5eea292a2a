package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/diogo/medilingua/internal/api"
	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/history"
	"github.com/diogo/medilingua/internal/input"
	"github.com/diogo/medilingua/internal/models"
)

type fixture struct {
	store  *history.Store
	input  *input.Controller
	client *api.MockClient
	orch   *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  history.NewStore(),
		input:  input.NewController(),
		client: &api.MockClient{},
	}
	f.orch = New(f.store, f.input, f.client)
	return f
}

// run submits text, executes against the mock and completes the submission
func (f *fixture) run(t *testing.T, text string) models.Message {
	t.Helper()
	sub, err := f.orch.Submit(text)
	if err != nil {
		t.Fatalf("Submit(%q) failed: %v", text, err)
	}
	tr, execErr := f.orch.Execute(context.Background(), sub)
	msg, err := f.orch.Complete(sub, tr, execErr)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	return msg
}

func TestSubmit_Success(t *testing.T) {
	f := newFixture(t)
	f.client.TranslateVal = &models.Translation{
		TranslatedText:  "मेरी बांह में दर्द है",
		Keywords:        []models.Keyword{{Term: "बांह", English: "arm"}},
		Recommendations: []string{"Orthopedics"},
		VisualAid:       "http://img/arm.png",
	}
	f.input.SetDraft("My arm hurts")

	msg := f.run(t, "My arm hurts")

	chat := f.store.Chat()
	if len(chat) != 3 {
		t.Fatalf("chat length = %d, want 3", len(chat))
	}
	if chat[1].Sender != models.SenderUser || chat[1].Lang != "en" {
		t.Errorf("user message = %+v", chat[1])
	}
	if msg.Text != "मेरी बांह में दर्द है" || msg.Lang != "hi" {
		t.Errorf("bot message = %+v", msg)
	}
	if f.orch.Phase() != Settled {
		t.Errorf("Phase = %s, want settled", f.orch.Phase())
	}
	if f.input.Draft() != "" {
		t.Errorf("draft should be cleared, got %q", f.input.Draft())
	}
	if f.store.ActiveVisualAid() != "http://img/arm.png" {
		t.Errorf("ActiveVisualAid = %q", f.store.ActiveVisualAid())
	}
	if len(f.store.History()) != 1 {
		t.Errorf("history length = %d, want 1", len(f.store.History()))
	}

	req := f.client.TranslateCalls[0]
	if req.Text != "My arm hurts" || req.Source != "en" || req.Target != "hi" {
		t.Errorf("request = %+v", req)
	}
}

func TestSubmit_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		f := newFixture(t)
		if _, err := f.orch.Submit(text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Submit(%q) err = %v, want ErrEmptyText", text, err)
		}
		if f.store.Len() != 1 {
			t.Errorf("chat changed for %q", text)
		}
		if f.orch.Phase() != Idle {
			t.Errorf("Phase = %s, want idle", f.orch.Phase())
		}
		if f.client.TranslateCount() != 0 {
			t.Error("no request should be issued")
		}
	}
}

func TestSubmit_BusyDropsSecond(t *testing.T) {
	f := newFixture(t)

	first, err := f.orch.Submit("first question")
	if err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	before := f.store.Len()

	if _, err := f.orch.Submit("second question"); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	if f.store.Len() != before {
		t.Error("busy submission should not change the chat")
	}
	if !f.orch.Busy() {
		t.Error("orchestrator should still be busy")
	}

	f.orch.Complete(first, &models.Translation{TranslatedText: "ok"}, nil)
	if f.orch.Busy() {
		t.Error("orchestrator should be idle after completion")
	}
}

func TestSubmit_Dedup(t *testing.T) {
	f := newFixture(t)

	if _, err := f.orch.Submit("hello doctor"); err != nil {
		t.Fatal(err)
	}
	// Second submit of identical text while the user message is still last
	f.orch.phase = Idle
	if _, err := f.orch.Submit("hello doctor"); err != nil {
		t.Fatal(err)
	}

	users := 0
	for _, m := range f.store.Chat() {
		if m.Sender == models.SenderUser {
			users++
		}
	}
	if users != 1 {
		t.Errorf("user messages = %d, want 1", users)
	}
}

func TestSubmit_ExternalTextKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.input.SetDraft("typing something else")

	if _, err := f.orch.Submit("text from a scan"); err != nil {
		t.Fatal(err)
	}
	if f.input.Draft() != "typing something else" {
		t.Errorf("draft = %q, want unchanged", f.input.Draft())
	}
}

func TestSubmit_UsesLanguagesAtSubmissionTime(t *testing.T) {
	f := newFixture(t)
	f.client.TranslateVal = &models.Translation{TranslatedText: "hola"}

	sub, _ := f.orch.Submit("hello")
	_ = f.input.SetTarget("es")
	tr, _ := f.orch.Execute(context.Background(), sub)
	_ = f.input.SetTarget("fr")
	msg, _ := f.orch.Complete(sub, tr, nil)

	if msg.Lang != "hi" {
		t.Errorf("bot lang = %s, want target at submission (hi)", msg.Lang)
	}
}

func TestComplete_MissingFieldsDefault(t *testing.T) {
	f := newFixture(t)
	f.client.TranslateVal = &models.Translation{}

	msg := f.run(t, "hello")

	if msg.Text != models.TranslationFallbackText {
		t.Errorf("Text = %q, want fallback", msg.Text)
	}
	if msg.Keywords == nil || len(msg.Keywords) != 0 {
		t.Errorf("Keywords = %#v, want empty", msg.Keywords)
	}
	if msg.HasVisualAid() {
		t.Error("no visual aid expected")
	}
	if f.store.ActiveVisualAid() != "" {
		t.Error("active visual aid should stay empty")
	}
}

func TestComplete_APIErrorSettlesWithFallback(t *testing.T) {
	f := newFixture(t)
	f.client.TranslateErr = apierrors.NewAPIError(500, models.EndpointTranslate, "Translation service failed.")

	msg := f.run(t, "hello")

	if msg.Text != models.TranslationFallbackText {
		t.Errorf("Text = %q, want fallback", msg.Text)
	}
	if f.orch.Phase() != Settled {
		t.Errorf("Phase = %s, want settled", f.orch.Phase())
	}
	if len(f.store.History()) != 1 {
		t.Error("fallback response should be committed")
	}
}

func TestComplete_NetworkFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", apierrors.NewNetworkError(models.EndpointTranslate, errors.New("connection refused"))},
		{"parse", apierrors.NewParseError("response is not valid JSON", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.client.TranslateErr = tt.err

			msg := f.run(t, "hello")

			if msg.Text != models.ServiceUnavailableText || msg.Lang != "en" {
				t.Errorf("bot message = %+v", msg)
			}
			if len(msg.Keywords) != 0 || len(msg.Recommendations) != 0 || msg.HasVisualAid() {
				t.Errorf("failure message should carry no extras: %+v", msg)
			}
			if f.orch.Phase() != Failed {
				t.Errorf("Phase = %s, want failed", f.orch.Phase())
			}
			if len(f.store.History()) != 0 {
				t.Error("failed submission should not be committed")
			}
			if f.orch.Busy() {
				t.Error("failed orchestrator should accept new submissions")
			}
		})
	}
}

func TestComplete_Stale(t *testing.T) {
	f := newFixture(t)

	sub, _ := f.orch.Submit("hello")
	f.orch.Complete(sub, &models.Translation{TranslatedText: "hi"}, nil)

	if _, err := f.orch.Complete(sub, &models.Translation{TranslatedText: "again"}, nil); !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
	if f.store.Len() != 3 {
		t.Errorf("chat length = %d, want 3", f.store.Len())
	}
}

func TestHistoryCommit_SameConversation(t *testing.T) {
	f := newFixture(t)
	f.client.TranslateVal = &models.Translation{TranslatedText: "नमस्ते डॉक्टर"}

	f.run(t, "Hello doctor")
	hist := f.store.History()
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	if hist[0].Title != "Hello doctor" || len(hist[0].Chat) != 3 {
		t.Errorf("conversation = %+v", hist[0])
	}

	f.run(t, "I have a fever")
	hist = f.store.History()
	if len(hist) != 1 {
		t.Fatalf("history length = %d, want 1", len(hist))
	}
	if hist[0].Title != "I have a fever" || len(hist[0].Chat) != 5 {
		t.Errorf("conversation = title %q, %d messages", hist[0].Title, len(hist[0].Chat))
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		Idle:       "idle",
		Submitting: "submitting",
		Settled:    "settled",
		Failed:     "failed",
		Phase(42):  "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
