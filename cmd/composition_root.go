package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"pizzeria/internal/adapters/out/menucatalog"
	"pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/adapters/out/userdirectory"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// The order registry is seeded from the highest persisted order id so the
// allocation sequence survives restarts.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *services.OrderRegistry
	users      ports.UserDirectory
	menu       ports.MenuCatalog
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. publisher may be nil when no
// event broker is configured.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) (CompositionRoot, error) {
	lastID, err := orderrepo.NewGormOrderRepository(gormDB).MaxID(ctx)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to seed order registry: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   services.NewOrderRegistry(lastID),
		users:      userdirectory.NewClient(config.UserServiceURL, http.DefaultClient),
		menu:       menucatalog.NewClient(config.MenuServiceURL, http.DefaultClient),
		publisher:  publisher,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		c.registry,
		c.users,
		c.menu,
		c.publisher,
		c.config.UserLookupTimeout,
		c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(),
		c.registry,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRetryFailedPaymentsCommandHandler() commands.RetryFailedPaymentsCommandHandler {
	return commands.NewRetryFailedPaymentsCommandHandler(
		c.orderUoWFactory(),
		c.registry,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
