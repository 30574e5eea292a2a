package orchestrator

import (
	"context"
	"errors"
	"testing"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/models"
)

func TestBeginImage_RejectsNonImage(t *testing.T) {
	for _, path := range []string{"notes.txt", "report.pdf", "noext"} {
		f := newFixture(t)
		if _, err := f.orch.BeginImage(path); !errors.Is(err, ErrNotImage) {
			t.Errorf("BeginImage(%q) err = %v, want ErrNotImage", path, err)
		}
		if f.store.Len() != 1 {
			t.Errorf("non-image %q should not append a message", path)
		}
	}
}

func TestBeginImage_AppendsPlaceholder(t *testing.T) {
	f := newFixture(t)

	up, err := f.orch.BeginImage("/tmp/scans/prescription.png")
	if err != nil {
		t.Fatalf("BeginImage failed: %v", err)
	}
	if up.Name != "prescription.png" {
		t.Errorf("Name = %q", up.Name)
	}

	msg, ok := f.store.Message(up.MessageID)
	if !ok {
		t.Fatal("placeholder not found")
	}
	if msg.Text != "Uploading and processing image: prescription.png..." {
		t.Errorf("placeholder = %q", msg.Text)
	}
	if msg.Sender != models.SenderUser {
		t.Error("placeholder should be a user message")
	}
}

func TestImageDone_SuccessSubmitsExtractedText(t *testing.T) {
	f := newFixture(t)
	f.client.ProcessImageVal = "Paracetamol 500mg twice daily"
	f.client.TranslateVal = &models.Translation{TranslatedText: "पेरासिटामोल"}

	up, _ := f.orch.BeginImage("rx.jpg")
	text, err := f.orch.Upload(context.Background(), up)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	sub, err := f.orch.ImageDone(up, text, nil)
	if err != nil || sub == nil {
		t.Fatalf("ImageDone = %v, %v", sub, err)
	}
	if sub.Request.Text != "Paracetamol 500mg twice daily" {
		t.Errorf("request text = %q", sub.Request.Text)
	}

	chat := f.store.Chat()
	// welcome + placeholder replaced in place, no duplicate user message
	if len(chat) != 2 {
		t.Fatalf("chat length = %d, want 2", len(chat))
	}
	if chat[1].ID != up.MessageID || chat[1].Text != "Paracetamol 500mg twice daily" {
		t.Errorf("placeholder not replaced: %+v", chat[1])
	}

	tr, execErr := f.orch.Execute(context.Background(), sub)
	if _, err := f.orch.Complete(sub, tr, execErr); err != nil {
		t.Fatal(err)
	}
	if f.store.Len() != 3 {
		t.Errorf("chat length = %d, want 3", f.store.Len())
	}
}

func TestImageDone_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server reported",
			err:  apierrors.NewImageError(400, "No text found"),
			want: "Error processing image: No text found",
		},
		{
			name: "transport",
			err:  apierrors.NewNetworkError(models.EndpointProcessImage, errors.New("dial tcp: refused")),
			want: models.ImageTransportErrorText,
		},
		{
			name: "unreadable",
			err:  apierrors.NewParseError("response is not valid JSON", ""),
			want: models.ImageTransportErrorText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			up, _ := f.orch.BeginImage("scan.jpeg")

			sub, err := f.orch.ImageDone(up, "", tt.err)
			if sub != nil || err == nil {
				t.Errorf("ImageDone = %v, %v; want nil submission and error", sub, err)
			}

			chat := f.store.Chat()
			last := chat[len(chat)-1]
			if !last.IsBot() || last.Text != tt.want {
				t.Errorf("last message = %+v, want bot %q", last, tt.want)
			}
			if f.client.TranslateCount() != 0 {
				t.Error("no translation should be requested")
			}
			if f.orch.Phase() != Idle {
				t.Errorf("Phase = %s, want idle", f.orch.Phase())
			}
		})
	}
}

func TestImageDone_BusyDropsSubmission(t *testing.T) {
	f := newFixture(t)

	if _, err := f.orch.Submit("first"); err != nil {
		t.Fatal(err)
	}
	up, _ := f.orch.BeginImage("scan.png")

	sub, err := f.orch.ImageDone(up, "extracted", nil)
	if sub != nil || err != nil {
		t.Errorf("ImageDone = %v, %v; want nil, nil", sub, err)
	}
	msg, _ := f.store.Message(up.MessageID)
	if msg.Text != "extracted" {
		t.Errorf("placeholder should still be replaced, got %q", msg.Text)
	}
}
