// Package search provides the runner logic for finding items by text or tag.
package search

import (
	"context"
	"errors"

	"tableflip.dev/thoughts/pkg/app"
	"tableflip.dev/thoughts/pkg/entry"
	"tableflip.dev/thoughts/pkg/printers"
)

// Search prints top-level items matching Query together with their
// descendants.
type Search struct {
	Query string
	JSON  bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Search) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not search, no service")
	}
	found, err := n.Service.Search(ctx, n.Query)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(found)
	}

	all, err := n.Service.Items(ctx)
	if err != nil {
		return err
	}
	lookup := make(map[string]*entry.Item, len(all))
	for _, it := range all {
		lookup[it.ID] = it
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.NewLine()
	pp.TitleWithCount(n.Query, len(found))
	pp.Tree(lookup, found...)
	return nil
}
