package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/you-humble/computer-shop/platform/logger"
)

type Func func(ctx context.Context) error

type namedFunc struct {
	name string
	fn   Func
}

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

// Closer runs registered shutdown funcs once, in reverse registration order.
type Closer struct {
	mu    sync.Mutex
	funcs []namedFunc
	once  sync.Once
	log   Logger
}

var global = New()

func New() *Closer { return &Closer{log: logger.L()} }

func SetLogger(l Logger) { global.SetLogger(l) }

func AddNamed(name string, fn Func) { global.AddNamed(name, fn) }

func CloseAll(ctx context.Context) error { return global.CloseAll(ctx) }

func (c *Closer) SetLogger(l Logger) {
	c.mu.Lock()
	c.log = l
	c.mu.Unlock()
}

func (c *Closer) AddNamed(name string, fn Func) {
	c.mu.Lock()
	c.funcs = append(c.funcs, namedFunc{name: name, fn: fn})
	c.mu.Unlock()
}

func (c *Closer) CloseAll(ctx context.Context) error {
	var result error

	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.funcs = nil
		log := c.log
		c.mu.Unlock()

		var errs []error
		for i := len(funcs) - 1; i >= 0; i-- {
			f := funcs[i]
			if err := f.fn(ctx); err != nil {
				log.Error(ctx, "❌ failed to close "+f.name, logger.ErrorF(err))
				errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
				continue
			}
			log.Info(ctx, "✅ closed "+f.name)
		}
		result = errors.Join(errs...)
	})

	return result
}
