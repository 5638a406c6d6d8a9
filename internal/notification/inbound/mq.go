package inbound

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gonote/internal/pkg/goroutine"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/messaging"
	"github.com/shandysiswandi/gonote/internal/pkg/uid"
	"github.com/shandysiswandi/gonote/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	routine *goroutine.Manager,
	messenger messaging.Client,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	consumers := []struct {
		topic   string
		handler messaging.Handler
	}{
		{topic: event.OTPIssuedDestination, handler: mqHandler.OTPIssuedNotification},
	}

	for _, consumer := range consumers {
		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "topic", consumer.topic)
			return messenger.Subscribe(pCtx, consumer.topic, consumer.handler)
		})
	}
}
