package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/you-humble/computer-shop/internal/converter"
	"github.com/you-humble/computer-shop/internal/model"
)

type RecordSaver interface {
	Save(ctx context.Context, records [][]string) error
}

type seed struct {
	part  func() (model.Part, error)
	stock int
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// PartsBootstrap writes the starter catalog used when no catalog file exists yet.
func PartsBootstrap(ctx context.Context, s RecordSaver) error {
	const op = "repository.PartsBootstrap"

	seeds := []seed{
		{func() (model.Part, error) { return model.NewCPU("AMD Ryzen 3", price("97.99"), 4, 3.7) }, 0},
		{func() (model.Part, error) { return model.NewCPU("AMD Ryzen 5", price("119.99"), 6, 3.2) }, 2},
		{func() (model.Part, error) { return model.NewCPU("Intel Core i7", price("409.00"), 8, 3.6) }, 3},
		{func() (model.Part, error) { return model.NewGraphicsCard("NVIDIA GeForce 1080", price("925.00"), 1607, 8) }, 1},
		{func() (model.Part, error) { return model.NewGraphicsCard("AMD Radeon RX 580", price("329.00"), 1340, 8) }, 4},
		{func() (model.Part, error) { return model.NewMemory("Corsair Vengeance", price("239.00"), 16, 3000, "DDR4") }, 5},
		{func() (model.Part, error) { return model.NewMemory("Kingston HyperX", price("89.50"), 8, 2666, "DDR4") }, 2},
		{func() (model.Part, error) { return model.NewStorage("Seagate Barracuda", price("60.00"), 1000, model.MediaHDD) }, 6},
		{func() (model.Part, error) { return model.NewStorage("Samsung 970 EVO", price("129.50"), 500, model.MediaSSD) }, 3},
		{func() (model.Part, error) { return model.NewStorage("FireCuda Hybrid", price("98.00"), 2000, model.MediaSSHD) }, 1},
	}

	records := make([][]string, 0, len(seeds))
	for _, sd := range seeds {
		p, err := sd.part()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		records = append(records, converter.PartToRecord(p, sd.stock))
	}

	if err := s.Save(ctx, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
