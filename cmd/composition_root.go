package cmd

import (
	"dispatch/internal/adapters/out/fleetstore"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	ledger        *services.DispatchLedger
	storeCatalog  ports.StoreCatalog
	geoIndex      services.GeoIndex
	etaCalculator services.ETACalculator
}

// NewCompositionRoot wires the dispatch engine: the gorm unit of work,
// the seeded store catalog, the courier ledger with every seeded courier
// registered, and the pure domain services.
func NewCompositionRoot(_ Config, gormDB *gorm.DB) (CompositionRoot, error) {
	stores, err := fleetstore.SeedStores()
	if err != nil {
		return CompositionRoot{}, err
	}

	storeCatalog, err := fleetstore.NewInMemoryCatalog(stores)
	if err != nil {
		return CompositionRoot{}, err
	}

	couriers, err := fleetstore.SeedCouriers()
	if err != nil {
		return CompositionRoot{}, err
	}

	ledger := services.NewDispatchLedger()
	for _, courier := range couriers {
		if err = ledger.Register(courier); err != nil {
			return CompositionRoot{}, err
		}
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:        ledger,
		storeCatalog:  storeCatalog,
		geoIndex:      services.NewGeoIndex(),
		etaCalculator: services.NewETACalculator(fleetstore.ZoneBaseMinutes()),
	}, nil
}

func (c *CompositionRoot) Ledger() *services.DispatchLedger {
	return c.ledger
}

func (c *CompositionRoot) StoreCatalog() ports.StoreCatalog {
	return c.storeCatalog
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.storeCatalog, c.ledger, c.geoIndex, c.etaCalculator)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceDeliveryCommandHandler(f, c.ledger)
}

func (c *CompositionRoot) CreateEndTrialCommandHandler() commands.EndTrialCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEndTrialCommandHandler(f)
}

func (c *CompositionRoot) CreateCheckTrialTimeoutsCommandHandler() commands.CheckTrialTimeoutsCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckTrialTimeoutsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveAssignmentsQueryHandler() queries.GetActiveAssignmentsQueryHandler {
	return queries.NewGetActiveAssignmentsQueryHandler(c.gormDB)
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
