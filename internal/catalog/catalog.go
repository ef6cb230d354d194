package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/you-humble/computer-shop/internal/converter"
	"github.com/you-humble/computer-shop/internal/model"
)

const (
	DefaultTitle = "Part List"
	footer       = "--------------------"
)

type Entry struct {
	Part  model.Part
	Stock int
}

// Catalog is an ordered set of uniquely named parts with a stock count per name.
// A stock of zero keeps the part listed as out of stock.
type Catalog struct {
	mu    sync.RWMutex
	items []model.Part
	stock map[string]int
}

func New() *Catalog {
	return &Catalog{stock: make(map[string]int)}
}

// Add inserts p with the given stock, or bumps the stock by one when an equal part is already listed.
func (c *Catalog) Add(p model.Part, stock int) (int, error) {
	if stock < 0 {
		return 0, errors.Join(model.ErrValidation, fmt.Errorf("stock must be non-negative, got %d", stock))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.Name()); i >= 0 {
		if !c.items[i].Equal(p) {
			return c.stock[p.Name()], fmt.Errorf("%w: %s", model.ErrConflictingDuplicate, p.Name())
		}
		c.stock[p.Name()]++
		return c.stock[p.Name()], nil
	}

	c.items = append(c.items, p)
	c.stock[p.Name()] = stock
	return stock, nil
}

// Replace swaps the part stored under p's name for p and keeps its stock.
func (c *Catalog) Replace(p model.Part) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(p.Name())
	if i < 0 {
		return fmt.Errorf("%w: %s", model.ErrPartNotFound, p.Name())
	}
	c.items[i] = p
	return nil
}

func (c *Catalog) PartByName(name string) (model.Part, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(name)
	if i < 0 {
		return model.Part{}, fmt.Errorf("%w: %s", model.ErrPartNotFound, name)
	}
	return c.items[i], nil
}

func (c *Catalog) PartByIndex(i int) (model.Part, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i < 0 || i >= len(c.items) {
		return model.Part{}, fmt.Errorf("%w: %d not in [0, %d)", model.ErrIndexOutOfRange, i, len(c.items))
	}
	return c.items[i], nil
}

// RemoveByName deletes the part and its stock entry and returns the stock it had.
func (c *Catalog) RemoveByName(name string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s", model.ErrPartNotFound, name)
	}
	return c.removeAt(i), nil
}

func (c *Catalog) RemoveByIndex(i int) (model.Part, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.items) {
		return model.Part{}, 0, fmt.Errorf("%w: %d not in [0, %d)", model.ErrIndexOutOfRange, i, len(c.items))
	}
	p := c.items[i]
	return p, c.removeAt(i), nil
}

func (c *Catalog) DecrementStock(name string) error {
	_, err := c.Take(name)
	return err
}

// Take decrements the stock of name by one and returns the part.
func (c *Catalog) Take(name string) (model.Part, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(name)
	if i < 0 {
		return model.Part{}, fmt.Errorf("%w: %s", model.ErrPartNotFound, name)
	}
	if c.stock[name] <= 0 {
		return model.Part{}, fmt.Errorf("%w: %s", model.ErrOutOfStock, name)
	}
	c.stock[name]--
	return c.items[i], nil
}

func (c *Catalog) IncrementStock(name string, n int) error {
	if n < 0 {
		return errors.Join(model.ErrValidation, fmt.Errorf("increment must be non-negative, got %d", n))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.stock[name]; !ok {
		return fmt.Errorf("%w: %s", model.ErrPartNotFound, name)
	}
	c.stock[name] += n
	return nil
}

// Restock returns n units of p, listing p first if it was removed in the meantime.
func (c *Catalog) Restock(p model.Part, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.Name()); i < 0 {
		c.items = append(c.items, p)
		c.stock[p.Name()] = 0
	} else if !c.items[i].Equal(p) {
		return fmt.Errorf("%w: %s", model.ErrConflictingDuplicate, p.Name())
	}
	c.stock[p.Name()] += n
	return nil
}

func (c *Catalog) Stock(name string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.stock[name]
	return n, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Entries returns a snapshot of the catalog in insertion order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Map(c.items, func(p model.Part, _ int) Entry {
		return Entry{Part: p, Stock: c.stock[p.Name()]}
	})
}

// Kinds returns the distinct kinds listed, in first-seen order.
func (c *Catalog) Kinds() []model.Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Uniq(lo.Map(c.items, func(p model.Part, _ int) model.Kind { return p.Kind() }))
}

// Load adds every record in order and stops at the first invalid one.
func (c *Catalog) Load(records [][]string) error {
	for i, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}

		p, stock, err := converter.PartFromRecord(rec)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := c.Add(p, stock); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}

// Save returns one record per listed part in catalog order.
func (c *Catalog) Save() [][]string {
	return lo.Map(c.Entries(), func(e Entry, _ int) []string {
		return converter.PartToRecord(e.Part, e.Stock)
	})
}

func (c *Catalog) Render(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "---- %s ----\n", title)
	for _, line := range c.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(footer)
	return b.String()
}

func (c *Catalog) String() string { return c.Render(DefaultTitle) }

// Lines renders one line per part with its stock annotation.
func (c *Catalog) Lines() []string {
	return lo.Map(c.Entries(), func(e Entry, _ int) string {
		if e.Stock <= 0 {
			return e.Part.String() + " (OUT OF STOCK)"
		}
		return fmt.Sprintf("%s (x%d)", e.Part, e.Stock)
	})
}

func (c *Catalog) indexOf(name string) int {
	_, i, ok := lo.FindIndexOf(c.items, func(p model.Part) bool { return p.Name() == name })
	if !ok {
		return -1
	}
	return i
}

func (c *Catalog) removeAt(i int) int {
	name := c.items[i].Name()
	n := c.stock[name]
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.stock, name)
	return n
}
