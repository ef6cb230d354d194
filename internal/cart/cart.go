package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/computer-shop/internal/catalog"
	"github.com/you-humble/computer-shop/internal/model"
)

type State int32

const (
	StateUnknown State = iota
	StateActive
	StateClosed
	StatePurchased
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateClosed:
		return "CLOSED"
	case StatePurchased:
		return "PURCHASED"
	default:
		return "UNKNOWN"
	}
}

const receiptExt = ".csv"

// Stocker is the catalog side of a reservation.
type Stocker interface {
	Take(name string) (model.Part, error)
	Restock(p model.Part, n int) error
}

// Cart is one user's wish list. Every unit it holds was taken out of a Stocker.
type Cart struct {
	id       uuid.UUID
	username string
	items    *catalog.Catalog
	state    State
}

func New(username string) (*Cart, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("wish list needs a username"))
	}

	return &Cart{
		id:       uuid.New(),
		username: username,
		items:    catalog.New(),
		state:    StateActive,
	}, nil
}

func (c *Cart) ID() uuid.UUID       { return c.id }
func (c *Cart) Username() string    { return c.username }
func (c *Cart) State() State        { return c.state }
func (c *Cart) Len() int            { return c.items.Len() }
func (c *Cart) Lines() []string     { return c.items.Lines() }
func (c *Cart) Kinds() []model.Kind { return c.items.Kinds() }

func (c *Cart) Count(name string) int {
	n, _ := c.items.Stock(name)
	return n
}

// Units is the number of reserved units across all parts.
func (c *Cart) Units() int {
	return lo.SumBy(c.items.Entries(), func(e catalog.Entry) int { return e.Stock })
}

// Reserve moves one unit of name from src into the cart and returns the cart's count.
func (c *Cart) Reserve(src Stocker, name string) (int, error) {
	if err := c.ensureActive(); err != nil {
		return 0, err
	}

	p, err := src.Take(name)
	if err != nil {
		return 0, err
	}

	if err := c.items.Restock(p, 1); err != nil {
		if rerr := src.Restock(p, 1); rerr != nil {
			return 0, errors.Join(err, rerr)
		}
		return 0, err
	}

	return c.Count(name), nil
}

// Release removes every unit of name from the cart and returns them to dst.
func (c *Cart) Release(dst Stocker, name string) (int, error) {
	if err := c.ensureActive(); err != nil {
		return 0, err
	}

	p, err := c.items.PartByName(name)
	if err != nil {
		return 0, err
	}
	n := c.Count(name)

	if err := dst.Restock(p, n); err != nil {
		return 0, fmt.Errorf("return %d x %s: %w", n, name, err)
	}
	if _, err := c.items.RemoveByName(name); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Cart) TotalCost() decimal.Decimal {
	return lo.Reduce(c.items.Entries(), func(sum decimal.Decimal, e catalog.Entry, _ int) decimal.Decimal {
		return sum.Add(e.Part.Price().Mul(decimal.NewFromInt(int64(e.Stock))))
	}, decimal.Zero)
}

// IsPurchasable reports whether the cart holds at least one part of every kind.
func (c *Cart) IsPurchasable() bool {
	return lo.Every(c.items.Kinds(), model.Kinds)
}

func (c *Cart) Render() string {
	var b strings.Builder
	b.WriteString(c.items.Render(c.username + "'s Wish List"))
	fmt.Fprintf(&b, "\n$%s\n", c.TotalCost().StringFixed(2))
	if c.IsPurchasable() {
		b.WriteString("Valid computer")
	} else {
		b.WriteString("Not a valid computer")
	}
	return b.String()
}

func (c *Cart) String() string { return c.Render() }

// CloseWithoutPurchase returns every reserved unit to dst and closes the cart.
// Parts dst refuses stay in the cart, which then remains Active.
func (c *Cart) CloseWithoutPurchase(dst Stocker) error {
	if err := c.ensureActive(); err != nil {
		return err
	}

	var errs []error
	for _, e := range c.items.Entries() {
		if err := dst.Restock(e.Part, e.Stock); err != nil {
			errs = append(errs, fmt.Errorf("return %d x %s: %w", e.Stock, e.Part.Name(), err))
			continue
		}
		if _, err := c.items.RemoveByName(e.Part.Name()); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.state = StateClosed
	return nil
}

// Purchase hands the cart's receipt to persist and closes the cart once persist succeeds.
// Reserved stock is not returned. When persist fails the cart stays Active with its units.
func (c *Cart) Purchase(persist func(*model.Receipt) error) (*model.Receipt, error) {
	if err := c.ensureActive(); err != nil {
		return nil, err
	}
	if c.items.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrEmptyCart, c.username)
	}

	r := &model.Receipt{
		ID:       uuid.New(),
		Username: c.username,
		FileName: c.username + receiptExt,
		Records:  c.items.Save(),
		Total:    c.TotalCost(),
		Units:    c.Units(),
	}
	if err := persist(r); err != nil {
		return nil, err
	}

	c.state = StatePurchased
	return r, nil
}

func (c *Cart) ensureActive() error {
	if c.state != StateActive {
		return fmt.Errorf("%w: %s is %s", model.ErrCartClosed, c.username, c.state)
	}
	return nil
}
