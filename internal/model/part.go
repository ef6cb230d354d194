package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Kind int32

const (
	KindUnknown Kind = iota
	KindCPU
	KindGraphicsCard
	KindMemory
	KindStorage
)

// Kinds lists every concrete part kind in menu order.
var Kinds = []Kind{KindCPU, KindGraphicsCard, KindMemory, KindStorage}

var kindTags = map[Kind]string{
	KindCPU:          "CPU",
	KindGraphicsCard: "GraphicsCard",
	KindMemory:       "Memory",
	KindStorage:      "Storage",
}

var kindLabels = map[Kind]string{
	KindCPU:          "CPU",
	KindGraphicsCard: "Graphics Card",
	KindMemory:       "Memory",
	KindStorage:      "Storage",
}

// String returns the record tag of the kind.
func (k Kind) String() string {
	if tag, ok := kindTags[k]; ok {
		return tag
	}
	return "Unknown"
}

// Label returns the human readable name shown in menus.
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "Unknown"
}

func KindFromTag(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return k, true
		}
	}
	return KindUnknown, false
}

type MediaType string

const (
	MediaHDD  MediaType = "HDD"
	MediaSSD  MediaType = "SSD"
	MediaSSHD MediaType = "SSHD"
)

func ParseMediaType(s string) (MediaType, error) {
	switch m := MediaType(strings.ToUpper(strings.TrimSpace(s))); m {
	case MediaHDD, MediaSSD, MediaSSHD:
		return m, nil
	default:
		return "", errors.Join(ErrValidation, fmt.Errorf("unknown media type %q", s))
	}
}

// Spec holds the kind specific attributes of a Part.
type Spec interface {
	Kind() Kind
	spec()
}

type CPU struct {
	// Number of physical cores.
	Cores int `validate:"gt=0"`
	// Base clock in gigahertz.
	ClockGHz float64 `validate:"gt=0"`
}

type GraphicsCard struct {
	// Core clock in megahertz.
	ClockMHz int `validate:"gt=0"`
	// Video memory in gigabytes.
	MemoryGB int `validate:"gt=0"`
}

type Memory struct {
	// Module capacity in gigabytes.
	CapacityGB int `validate:"gt=0"`
	// Memory clock in megahertz.
	ClockMHz int `validate:"gt=0"`
	// DDR generation, e.g. DDR4.
	Generation string `validate:"required"`
}

type Storage struct {
	// Capacity in gigabytes.
	CapacityGB int `validate:"gt=0"`
	// Storage media.
	Media MediaType `validate:"oneof=HDD SSD SSHD"`
}

func (CPU) Kind() Kind          { return KindCPU }
func (GraphicsCard) Kind() Kind { return KindGraphicsCard }
func (Memory) Kind() Kind       { return KindMemory }
func (Storage) Kind() Kind      { return KindStorage }

func (CPU) spec()          {}
func (GraphicsCard) spec() {}
func (Memory) spec()       {}
func (Storage) spec()      {}

// Part is an immutable catalog item. Use NewPart or one of the kind constructors.
type Part struct {
	name  string
	price decimal.Decimal
	spec  Spec
}

var validate = validator.New()

func NewPart(name string, price decimal.Decimal, spec Spec) (Part, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Part{}, errors.Join(ErrValidation, errors.New("name must be non-empty"))
	}
	if !price.IsPositive() {
		return Part{}, errors.Join(ErrValidation, fmt.Errorf("price must be positive, got %s", price))
	}
	if spec == nil {
		return Part{}, errors.Join(ErrValidation, errors.New("part kind must be set"))
	}
	if c, ok := spec.(CPU); ok && (math.IsInf(c.ClockGHz, 0) || math.IsNaN(c.ClockGHz)) {
		return Part{}, errors.Join(ErrValidation, fmt.Errorf("ClockGHz must be a finite number, got %v", c.ClockGHz))
	}
	if err := validate.Struct(spec); err != nil {
		return Part{}, errors.Join(ErrValidation, describeValidation(err))
	}

	return Part{name: name, price: price, spec: spec}, nil
}

func NewCPU(name string, price decimal.Decimal, cores int, clockGHz float64) (Part, error) {
	return NewPart(name, price, CPU{Cores: cores, ClockGHz: clockGHz})
}

func NewGraphicsCard(name string, price decimal.Decimal, clockMHz, memoryGB int) (Part, error) {
	return NewPart(name, price, GraphicsCard{ClockMHz: clockMHz, MemoryGB: memoryGB})
}

func NewMemory(name string, price decimal.Decimal, capacityGB, clockMHz int, generation string) (Part, error) {
	return NewPart(name, price, Memory{
		CapacityGB: capacityGB,
		ClockMHz:   clockMHz,
		Generation: strings.TrimSpace(generation),
	})
}

func NewStorage(name string, price decimal.Decimal, capacityGB int, media MediaType) (Part, error) {
	return NewPart(name, price, Storage{CapacityGB: capacityGB, Media: media})
}

func (p Part) Name() string           { return p.name }
func (p Part) Price() decimal.Decimal { return p.price }
func (p Part) Spec() Spec             { return p.spec }

func (p Part) Kind() Kind {
	if p.spec == nil {
		return KindUnknown
	}
	return p.spec.Kind()
}

// Equal reports whether both parts have the same kind and identical attributes.
func (p Part) Equal(other Part) bool {
	return p.name == other.name &&
		p.price.Equal(other.price) &&
		p.spec == other.spec
}

func (p Part) String() string {
	price := p.price.StringFixed(2)

	switch s := p.spec.(type) {
	case CPU:
		return fmt.Sprintf("%s: %d cores @ %sGHz for $%s", p.name, s.Cores, FormatFloat(s.ClockGHz), price)
	case GraphicsCard:
		return fmt.Sprintf("%s: %dGB @ %dMHz for $%s", p.name, s.MemoryGB, s.ClockMHz, price)
	case Memory:
		return fmt.Sprintf("%s: %dGB, %s @ %dMHz for $%s", p.name, s.CapacityGB, s.Generation, s.ClockMHz, price)
	case Storage:
		return fmt.Sprintf("%s: %dGB %s for $%s", p.name, s.CapacityGB, s.Media, price)
	default:
		return fmt.Sprintf("%s for $%s", p.name, price)
	}
}

// FormatFloat renders v with the fewest digits that parse back to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must be non-empty", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
