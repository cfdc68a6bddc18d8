package mock

import (
	"context"

	"github.com/fwojciec/parsel"
)

var _ parsel.Shell = (*Shell)(nil)

// Shell is a mock implementation of parsel.Shell.
type Shell struct {
	NameFn      func() string
	AvailableFn func() bool
	EmbedFn     func(ctx context.Context, ns parsel.Namespace, historyFile string) error
}

func (s *Shell) Name() string {
	return s.NameFn()
}

func (s *Shell) Available() bool {
	return s.AvailableFn()
}

func (s *Shell) Embed(ctx context.Context, ns parsel.Namespace, historyFile string) error {
	return s.EmbedFn(ctx, ns, historyFile)
}
