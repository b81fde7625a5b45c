// Package transfer exports and imports custom entries.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/gardencal/pkg/app"
	"tableflip.dev/gardencal/pkg/backup"
	"tableflip.dev/gardencal/pkg/printers"
)

type Export struct {
	Target  backup.Target
	Service *app.Service
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil || n.Target == nil {
		return errors.New("can not export, no service or target")
	}
	data, err := n.Service.Export(ctx)
	if err != nil {
		return err
	}
	if err := n.Target.Write(ctx, data); err != nil {
		return fmt.Errorf("writing %s: %w", n.Target, err)
	}
	return nil
}

type Import struct {
	Source  backup.Target
	Mode    app.ImportMode
	JSON    bool
	Service *app.Service
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil || n.Source == nil {
		return errors.New("can not import, no service or source")
	}
	data, err := n.Source.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading %s: %w", n.Source, err)
	}
	res, err := n.Service.Import(ctx, data, n.Mode)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	if n.JSON {
		return pp.JSON(res)
	}
	fmt.Printf("imported %d plants and %d tasks from %s (%s: %d new, %d updated)\n",
		res.Plants, res.Tasks, n.Source, n.Mode, res.Inserted, res.Updated)
	return nil
}
