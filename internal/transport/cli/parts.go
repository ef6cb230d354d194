package cli

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/you-humble/computer-shop/internal/model"
)

var partKinds = map[command]model.Kind{
	cmdCPU:          model.KindCPU,
	cmdGraphicsCard: model.KindGraphicsCard,
	cmdMemory:       model.KindMemory,
	cmdStorage:      model.KindStorage,
}

// addParts repeats the Part Types menu until Back is chosen.
func (h *Handler) addParts(ctx context.Context) error {
	for {
		cmd, err := h.choose(partTypesMenu)
		if err != nil {
			return err
		}
		if cmd == cmdBack {
			h.println()
			return nil
		}

		p, err := h.readPart(partKinds[cmd])
		if err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			h.failure("%s", describeError(err))
			h.println()
			continue
		}

		stock, err := h.svc.AddPart(ctx, p)
		switch {
		case errors.Is(err, model.ErrConflictingDuplicate):
			h.failure("Invalid %s! Try again with different arguments.", p.Kind().Label())
		case err != nil:
			h.failure("%s", describeError(err))
		case stock == 1:
			h.success("Added %s to the database.", p.Name())
		default:
			h.success("%s is already in the database, stock increased to %d.", p.Name(), stock)
		}
		h.println()
	}
}

// readPart prompts for the common fields and then the fields of kind.
func (h *Handler) readPart(kind model.Kind) (model.Part, error) {
	name, err := ask(h, "Enter the name: ", parseText("name"))
	if err != nil {
		return model.Part{}, err
	}
	price, err := ask(h, "Enter the price: ", parsePrice)
	if err != nil {
		return model.Part{}, err
	}

	switch kind {
	case model.KindCPU:
		return h.readCPU(name, price)
	case model.KindGraphicsCard:
		return h.readGraphicsCard(name, price)
	case model.KindMemory:
		return h.readMemory(name, price)
	default:
		return h.readStorage(name, price)
	}
}

func (h *Handler) readCPU(name string, price decimal.Decimal) (model.Part, error) {
	cores, err := ask(h, "Enter the number of cores: ", parsePositiveInt("cores"))
	if err != nil {
		return model.Part{}, err
	}
	ghz, err := ask(h, "Enter the frequency in GHz: ", parsePositiveFloat("frequency"))
	if err != nil {
		return model.Part{}, err
	}
	return model.NewCPU(name, price, cores, ghz)
}

func (h *Handler) readGraphicsCard(name string, price decimal.Decimal) (model.Part, error) {
	mhz, err := ask(h, "Enter the frequency in MHz: ", parsePositiveInt("frequency"))
	if err != nil {
		return model.Part{}, err
	}
	gb, err := ask(h, "Enter the memory in GB: ", parsePositiveInt("memory"))
	if err != nil {
		return model.Part{}, err
	}
	return model.NewGraphicsCard(name, price, mhz, gb)
}

func (h *Handler) readMemory(name string, price decimal.Decimal) (model.Part, error) {
	gb, err := ask(h, "Enter the capacity in GB: ", parsePositiveInt("capacity"))
	if err != nil {
		return model.Part{}, err
	}
	mhz, err := ask(h, "Enter the frequency in MHz: ", parsePositiveInt("frequency"))
	if err != nil {
		return model.Part{}, err
	}
	ddr, err := ask(h, "Enter the DDR: ", parseText("DDR"))
	if err != nil {
		return model.Part{}, err
	}
	return model.NewMemory(name, price, gb, mhz, ddr)
}

func (h *Handler) readStorage(name string, price decimal.Decimal) (model.Part, error) {
	gb, err := ask(h, "Enter the capacity in GB: ", parsePositiveInt("capacity"))
	if err != nil {
		return model.Part{}, err
	}
	media, err := ask(h, "Enter the storage type (HDD/SSD/SSHD): ", model.ParseMediaType)
	if err != nil {
		return model.Part{}, err
	}
	return model.NewStorage(name, price, gb, media)
}
