package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/gonote/internal/identity/usecase"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/messaging"
	"github.com/shandysiswandi/gonote/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Client
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Client, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOTPIssued(ctx context.Context, msg usecase.OTPIssuedEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishOTPIssued")
	defer span.End()

	body, err := json.Marshal(event.OTPIssuedMessage{
		UserID:   msg.UserID,
		Email:    msg.Email,
		FullName: msg.FullName,
		Code:     msg.Code,
		Purpose:  msg.Purpose.String(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, event.OTPIssuedDestination, messaging.Message{
		Body:       body,
		Key:        msg.Email,
		Attributes: map[string]string{keyOfCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
