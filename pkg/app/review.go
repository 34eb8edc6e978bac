package app

import (
	"context"

	"tableflip.dev/thoughts/pkg/entry"
)

// ReviewCandidate is an open todo carried over from an earlier day.
type ReviewCandidate struct {
	Item        *entry.Item
	Parent      *entry.Item
	WaitingDays int
}

// Review returns open todos written before today, longest waiting first. Each
// candidate carries its parent, when it has one, for context.
func (s *Service) Review(ctx context.Context) ([]ReviewCandidate, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	pending := s.journal.Review(s.now())
	out := make([]ReviewCandidate, 0, len(pending))
	for _, r := range pending {
		c := ReviewCandidate{Item: r.Item, WaitingDays: r.WaitingDays}
		if r.Item.ParentID != "" {
			if parent, err := s.journal.Get(r.Item.ParentID); err == nil {
				c.Parent = parent
			}
		}
		out = append(out, c)
	}
	return out, nil
}
