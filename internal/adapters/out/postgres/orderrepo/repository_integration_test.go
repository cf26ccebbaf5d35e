package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence behavior
// against a real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.DeliveryDetailsDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPizza(cents int64, size string) *item.Item {
	price, err := kernel.NewMoneyFromCents(cents)
	suite.Require().NoError(err)

	it, err := item.New(item.CategoryPizza, map[string]any{
		"size":     size,
		"toppings": []string{"pepperoni", "mushrooms"},
	}, price)
	suite.Require().NoError(err)
	return it
}

func (suite *OrderRepositoryIntegrationTestSuite) newDrink(cents int64) *item.Item {
	price, err := kernel.NewMoneyFromCents(cents)
	suite.Require().NoError(err)

	it, err := item.New(item.CategoryDrink, map[string]any{
		"name":     "Cola",
		"volumeMl": 500,
	}, price)
	suite.Require().NoError(err)
	return it
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrderWithItems(id int64, items ...*item.Item) *order.Order {
	aggregate, err := order.NewOrder(id, 7, time.Now().UTC())
	suite.Require().NoError(err)
	for _, it := range items {
		suite.Require().NoError(aggregate.AddItem(it))
	}
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newOrderWithItems(1, suite.newPizza(1000, "LARGE"), suite.newDrink(250))

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// database-generated item ids are written back
	for _, it := range aggregate.Items() {
		suite.Positive(it.ID())
	}

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), loaded.ID())
	suite.Equal(aggregate.UserID(), loaded.UserID())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(aggregate.TotalAmount().Cents(), loaded.TotalAmount().Cents())
	suite.Require().Len(loaded.Items(), 2)

	pizza := loaded.Items()[0]
	suite.Equal(item.CategoryPizza, pizza.Category())
	attrs, ok := pizza.Attributes().(item.PizzaAttributes)
	suite.Require().True(ok)
	suite.Equal(item.PizzaSizeLarge, attrs.Size)
	suite.Equal([]string{"pepperoni", "mushrooms"}, attrs.Toppings)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), 404)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusChange() {
	ctx := context.Background()
	aggregate := suite.newOrderWithItems(1, suite.newPizza(1000, "SMALL"))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.ChangeStatus(order.OrderReceived))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.OrderReceived, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RemovesDroppedItems() {
	ctx := context.Background()
	pizza := suite.newPizza(1000, "MEDIUM")
	drink := suite.newDrink(250)
	aggregate := suite.newOrderWithItems(1, pizza, drink)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.RemoveItem(drink.ID()))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(pizza.ID(), loaded.Items()[0].ID())
	suite.Equal(aggregate.TotalAmount().Cents(), loaded.TotalAmount().Cents())

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.EqualValues(1, itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AddsNewItems() {
	ctx := context.Background()
	aggregate := suite.newOrderWithItems(1, suite.newPizza(1000, "MEDIUM"))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	drink := suite.newDrink(250)
	suite.Require().NoError(aggregate.AddItem(drink))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	suite.Positive(drink.ID())

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(loaded.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotFound() {
	aggregate := suite.newOrderWithItems(99, suite.newPizza(1000, "SMALL"))
	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeliveryDetails_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newOrderWithItems(1, suite.newPizza(1000, "SMALL"))

	details, err := order.NewDeliveryDetails("1 Via Roma", "19:30", 42)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.SetDeliveryDetails(details))

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	suite.Positive(details.ID())

	loaded, err := suite.repository.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.DeliveryDetails())
	suite.Equal("1 Via Roma", loaded.DeliveryDetails().Address())
	suite.Equal("19:30", loaded.DeliveryDetails().PreferredTime())
	suite.EqualValues(42, loaded.DeliveryDetails().DriverID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_Filters() {
	ctx := context.Background()

	first := suite.newOrderWithItems(1, suite.newPizza(1000, "SMALL"))
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.newOrderWithItems(2, suite.newPizza(1200, "LARGE"))
	suite.Require().NoError(second.ChangeStatus(order.OrderReceived))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	pending, err := suite.repository.GetAllInStatus(ctx, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.EqualValues(1, pending[0].ID())

	received, err := suite.repository.GetAllInStatus(ctx, order.OrderReceived)
	suite.Require().NoError(err)
	suite.Require().Len(received, 1)
	suite.EqualValues(2, received[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_SortedByID() {
	ctx := context.Background()
	for _, id := range []int64{3, 1, 2} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrderWithItems(id, suite.newPizza(1000, "SMALL"))))
	}

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	for i, o := range all {
		suite.EqualValues(i+1, o.ID())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_Cascades() {
	ctx := context.Background()
	aggregate := suite.newOrderWithItems(1, suite.newPizza(1000, "SMALL"), suite.newDrink(250))
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Delete(ctx, 1))

	_, err := suite.repository.Get(ctx, 1)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&itemCount).Error)
	suite.Zero(itemCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_NotFound() {
	err := suite.repository.Delete(context.Background(), 404)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestMaxID() {
	ctx := context.Background()

	maxID, err := suite.repository.MaxID(ctx)
	suite.Require().NoError(err)
	suite.Zero(maxID)

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrderWithItems(7, suite.newPizza(1000, "SMALL"))))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrderWithItems(3, suite.newPizza(1000, "SMALL"))))

	maxID, err = suite.repository.MaxID(ctx)
	suite.Require().NoError(err)
	suite.EqualValues(7, maxID)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
