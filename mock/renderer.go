package mock

import (
	"context"

	"github.com/fwojciec/parsel"
)

var (
	_ parsel.Renderer = (*Renderer)(nil)
	_ parsel.Cache    = (*Cache)(nil)
)

// Renderer is a mock implementation of parsel.Renderer.
type Renderer struct {
	OpenFn  func(ctx context.Context) error
	GotoFn  func(ctx context.Context, url string) (*parsel.Response, error)
	CloseFn func() error
}

func (r *Renderer) Open(ctx context.Context) error {
	return r.OpenFn(ctx)
}

func (r *Renderer) Goto(ctx context.Context, url string) (*parsel.Response, error) {
	return r.GotoFn(ctx, url)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

// Cache is a mock implementation of parsel.Cache.
type Cache struct {
	GetFn func(ctx context.Context, url string, headers map[string]string) (*parsel.Response, error)
	PutFn func(ctx context.Context, url string, headers map[string]string, resp *parsel.Response) error
}

func (c *Cache) Get(ctx context.Context, url string, headers map[string]string) (*parsel.Response, error) {
	return c.GetFn(ctx, url, headers)
}

func (c *Cache) Put(ctx context.Context, url string, headers map[string]string, resp *parsel.Response) error {
	return c.PutFn(ctx, url, headers, resp)
}
