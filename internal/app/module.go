package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gonote/internal/identity"
	identityuc "github.com/shandysiswandi/gonote/internal/identity/usecase"
	"github.com/shandysiswandi/gonote/internal/notes"
	"github.com/shandysiswandi/gonote/internal/notification"
)

func (a *App) initModules() {
	var identityUC *identityuc.Usecase

	if a.config.GetBool("modules.identity.enabled") {
		uc, err := identity.New(identity.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			HMAC:       a.hmac,
			OTP:        a.otp,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			DBConn:     a.dbConn,
			Limiter:    a.limiter,
			Messaging:  a.messaging,
			JWT:        a.jwt,
		})
		if err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
		identityUC = uc
	}

	if a.config.GetBool("modules.notes.enabled") {
		if identityUC == nil {
			slog.Error("failed to init module notes", "error", "module identity must be enabled")
			os.Exit(1)
		}

		if err := notes.New(notes.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Authn:      identityUC,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notes", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(a.ctx, notification.Dependency{
			Goroutine:  a.goroutine,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
