// Package watch reprints the calendar whenever the store changes.
package watch

import (
	"context"
	"errors"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/logging"
	"tableflip.dev/gardencal/pkg/store"
)

type Watch struct {
	Service *app.Service
	// Print renders the calendar; it runs once up front and after each
	// reload.
	Print func(ctx context.Context) error
	Log   logging.Logger
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Service == nil || n.Print == nil {
		return errors.New("can not watch, no service")
	}
	log := logging.OrNoop(n.Log)
	events, err := n.Service.Watch(ctx)
	if err != nil {
		if errors.Is(err, store.ErrWatchUnsupported) {
			return errors.New("the configured store driver does not support watching, use diskv")
		}
		return err
	}
	if err := n.Print(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Key != "" && ev.Key != store.KeyCustomEntries && ev.Key != store.KeySelectedItems {
				continue
			}
			log.Debug("store changed", "key", ev.Key)
			if err := n.Service.Reload(ctx); err != nil {
				return err
			}
			if err := n.Print(ctx); err != nil {
				return err
			}
		}
	}
}
