package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ChannelSource implements pgx.CopyFromSource over rows sent on a channel,
// so a producer goroutine can feed COPY without materializing every row.
type ChannelSource struct {
	ctx     context.Context
	ch      <-chan []any
	current []any
	err     error
}

// NewChannelSource creates a CopyFromSource backed by ch. Iteration stops
// when ch is closed or ctx is done.
func NewChannelSource(ctx context.Context, ch <-chan []any) *ChannelSource {
	return &ChannelSource{ctx: ctx, ch: ch}
}

func (s *ChannelSource) Next() bool {
	select {
	case row, ok := <-s.ch:
		if !ok {
			return false
		}
		s.current = row
		return true
	case <-s.ctx.Done():
		s.err = s.ctx.Err()
		return false
	}
}

func (s *ChannelSource) Values() ([]any, error) {
	return s.current, nil
}

func (s *ChannelSource) Err() error {
	return s.err
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
