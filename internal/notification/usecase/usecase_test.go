package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gonote/internal/pkg/config"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/mail"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
)

type fakeMail struct {
	sent     []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}

	f.sent = append(f.sent, msg)

	return nil
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetInt(string) int { return 10 }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newFixture(t *testing.T) (*Usecase, *fakeMail) {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("init validator: %v", err)
	}

	fm := &fakeMail{}
	uc := NewNotification(Dependency{
		Config:     fakeConfig{},
		Validator:  v10,
		RepoMail:   fm,
		Clock:      fixedClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})

	return uc, fm
}

func validInput() ConsumeOTPIssuedInput {
	return ConsumeOTPIssuedInput{
		UserID:   1,
		Email:    "user@example.com",
		FullName: "Some User",
		Code:     "123456",
		Purpose:  "Signup",
	}
}

func TestConsumeOTPIssued(t *testing.T) {
	uc, fm := newFixture(t)

	err := uc.ConsumeOTPIssued(context.Background(), validInput())

	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if len(fm.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(fm.sent))
	}

	msg := fm.sent[0]
	if msg.To[0] != "user@example.com" {
		t.Fatalf("unexpected recipient: %v", msg.To)
	}
	if msg.Subject != "Your GoNote verification code" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{"Some User", "123456", "10 minutes", "GoNote"} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Fatalf("body missing %q:\n%s", want, msg.HTMLBody)
		}
	}
}

func TestConsumeOTPIssuedLoginPurpose(t *testing.T) {
	uc, fm := newFixture(t)

	in := validInput()
	in.Purpose = "Login"

	if err := uc.ConsumeOTPIssued(context.Background(), in); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if fm.sent[0].Subject != "Your GoNote login code" {
		t.Fatalf("unexpected subject: %q", fm.sent[0].Subject)
	}
	if !strings.Contains(fm.sent[0].HTMLBody, "sign in") {
		t.Fatal("login email must use the sign-in wording")
	}
}

func TestConsumeOTPIssuedDropsMalformedEvent(t *testing.T) {
	uc, fm := newFixture(t)

	cases := []struct {
		name   string
		mutate func(*ConsumeOTPIssuedInput)
	}{
		{"missing user id", func(in *ConsumeOTPIssuedInput) { in.UserID = 0 }},
		{"bad email", func(in *ConsumeOTPIssuedInput) { in.Email = "nope" }},
		{"short code", func(in *ConsumeOTPIssuedInput) { in.Code = "123" }},
		{"missing purpose", func(in *ConsumeOTPIssuedInput) { in.Purpose = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			if err := uc.ConsumeOTPIssued(context.Background(), in); err != nil {
				t.Fatalf("malformed events must be dropped, got error: %v", err)
			}
		})
	}

	if len(fm.sent) != 0 {
		t.Fatalf("no email should be sent for malformed events, got %d", len(fm.sent))
	}
}

func TestConsumeOTPIssuedRetriesTransientFailure(t *testing.T) {
	uc, fm := newFixture(t)
	fm.failures = 2

	if err := uc.ConsumeOTPIssued(context.Background(), validInput()); err != nil {
		t.Fatalf("consume should succeed after retries: %v", err)
	}
	if len(fm.sent) != 1 {
		t.Fatalf("expected 1 delivered email, got %d", len(fm.sent))
	}
}

func TestConsumeOTPIssuedReturnsDeliveryError(t *testing.T) {
	uc, fm := newFixture(t)
	fm.failures = 10

	if err := uc.ConsumeOTPIssued(context.Background(), validInput()); err == nil {
		t.Fatal("expected an error when every delivery attempt fails")
	}
	if len(fm.sent) != 0 {
		t.Fatalf("no email should be delivered, got %d", len(fm.sent))
	}
}
