package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gonote/internal/pkg/mail"
)

type ConsumeOTPIssuedInput struct {
	UserID   int64  `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Code     string `validate:"required,len=6,numeric"`
	Purpose  string `validate:"required"`
}

const otpEmailHTML = `<p>Hi {{.full_name}},</p>
<p>{{.intro}}</p>
<p style="font-size:24px;letter-spacing:4px"><strong>{{.code}}</strong></p>
<p>The code expires in {{.ttl_minutes}} minutes. If you did not request it, you can ignore this email.</p>
<p>{{.company_name}} &middot; {{.support_email}} &middot; {{.year}}</p>`

// ConsumeOTPIssued emails a freshly issued passcode to its owner, with the
// subject and wording chosen by the purpose that issued it. A malformed
// event is dropped; a delivery failure is returned so the broker redelivers.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "dropping malformed otp event", "user_id", in.UserID, "error", err)
		return nil
	}

	subject := "Your GoNote verification code"
	intro := "Use this code to verify your email address:"
	if in.Purpose == "Login" {
		subject = "Your GoNote login code"
		intro = "Use this code to sign in to your account:"
	}

	data := s.baseEmailTemplateData()
	data["full_name"] = in.FullName
	data["intro"] = intro
	data["code"] = in.Code
	data["ttl_minutes"] = s.cfg.GetInt("modules.identity.otp_ttl_minutes")

	body, err := s.renderTemplate("otp_email", otpEmailHTML, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email template", "user_id", in.UserID, "error", err)
		return nil
	}

	if err := s.sendWithRetry(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  subject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
