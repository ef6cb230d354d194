package converter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you-humble/computer-shop/internal/model"
)

// OutOfStock is written in place of a zero stock count.
const OutOfStock = "OUT OF STOCK"

// recordLen is the number of fields per kind, tag and stock included.
var recordLen = map[model.Kind]int{
	model.KindCPU:          6,
	model.KindGraphicsCard: 6,
	model.KindMemory:       7,
	model.KindStorage:      6,
}

// PartFromRecord parses one catalog record into a part and its stock count.
func PartFromRecord(fields []string) (model.Part, int, error) {
	if len(fields) == 0 {
		return model.Part{}, 0, errors.Join(model.ErrValidation, errors.New("empty record"))
	}

	fields = trimAll(fields)

	kind, ok := model.KindFromTag(fields[0])
	if !ok {
		return model.Part{}, 0, errors.Join(model.ErrValidation, fmt.Errorf("unknown part kind %q", fields[0]))
	}
	if want := recordLen[kind]; len(fields) != want {
		return model.Part{}, 0, errors.Join(
			model.ErrValidation,
			fmt.Errorf("%s record needs %d fields, got %d", kind, want, len(fields)),
		)
	}

	name := fields[1]
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return model.Part{}, 0, errors.Join(model.ErrValidation, fmt.Errorf("price %q: %w", fields[2], err))
	}

	stock, err := ParseStock(fields[len(fields)-1])
	if err != nil {
		return model.Part{}, 0, err
	}

	p, err := partFromFields(kind, name, price, fields[3:len(fields)-1])
	if err != nil {
		return model.Part{}, 0, err
	}

	return p, stock, nil
}

func partFromFields(kind model.Kind, name string, price decimal.Decimal, attrs []string) (model.Part, error) {
	switch kind {
	case model.KindCPU:
		cores, err := atoi("cores", attrs[0])
		if err != nil {
			return model.Part{}, err
		}
		clock, err := atof("clock", attrs[1])
		if err != nil {
			return model.Part{}, err
		}
		return model.NewCPU(name, price, cores, clock)
	case model.KindGraphicsCard:
		clock, err := atoi("clock", attrs[0])
		if err != nil {
			return model.Part{}, err
		}
		mem, err := atoi("memory", attrs[1])
		if err != nil {
			return model.Part{}, err
		}
		return model.NewGraphicsCard(name, price, clock, mem)
	case model.KindMemory:
		capacity, err := atoi("capacity", attrs[0])
		if err != nil {
			return model.Part{}, err
		}
		clock, err := atoi("clock", attrs[1])
		if err != nil {
			return model.Part{}, err
		}
		return model.NewMemory(name, price, capacity, clock, attrs[2])
	case model.KindStorage:
		capacity, err := atoi("capacity", attrs[0])
		if err != nil {
			return model.Part{}, err
		}
		media, err := model.ParseMediaType(attrs[1])
		if err != nil {
			return model.Part{}, err
		}
		return model.NewStorage(name, price, capacity, media)
	default:
		return model.Part{}, errors.Join(model.ErrValidation, fmt.Errorf("unknown part kind %s", kind))
	}
}

// PartToRecord is the inverse of PartFromRecord.
func PartToRecord(p model.Part, stock int) []string {
	out := make([]string, 0, recordLen[p.Kind()])
	out = append(out, p.Kind().String(), p.Name(), p.Price().String())

	switch s := p.Spec().(type) {
	case model.CPU:
		out = append(out, strconv.Itoa(s.Cores), model.FormatFloat(s.ClockGHz))
	case model.GraphicsCard:
		out = append(out, strconv.Itoa(s.ClockMHz), strconv.Itoa(s.MemoryGB))
	case model.Memory:
		out = append(out, strconv.Itoa(s.CapacityGB), strconv.Itoa(s.ClockMHz), s.Generation)
	case model.Storage:
		out = append(out, strconv.Itoa(s.CapacityGB), string(s.Media))
	}

	return append(out, FormatStock(stock))
}

// ParseStock accepts "N", the older "xN" form and "OUT OF STOCK".
func ParseStock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, OutOfStock) {
		return 0, nil
	}

	n, err := strconv.Atoi(strings.TrimPrefix(s, "x"))
	if err != nil || n < 0 {
		return 0, errors.Join(model.ErrValidation, fmt.Errorf("stock %q must be a non-negative integer", s))
	}
	return n, nil
}

func FormatStock(n int) string {
	if n <= 0 {
		return OutOfStock
	}
	return strconv.Itoa(n)
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Join(model.ErrValidation, fmt.Errorf("%s %q is not an integer", field, s))
	}
	return n, nil
}

func atof(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Join(model.ErrValidation, fmt.Errorf("%s %q is not a number", field, s))
	}
	return f, nil
}
