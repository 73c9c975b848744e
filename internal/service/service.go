package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Skotchmaster/college_admin/internal/apperr"
	"github.com/Skotchmaster/college_admin/internal/events"
	"github.com/Skotchmaster/college_admin/internal/logging"
)

type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// publish is best effort: a broker outage must not fail a committed write.
func publish(ctx context.Context, pub events.Publisher, ev events.Event) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, strconv.FormatUint(uint64(ev.EntityID), 10), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "type", ev.Type, "entity_id", ev.EntityID, "error", err)
	}
}

func requireID(id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: id must be a positive integer", apperr.ErrValidation)
	}
	return nil
}
