package queries_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/core/application/usecases/queries"
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

// OrderQueriesTestSuite exercises both order read queries against a real
// PostgreSQL instance, seeding data through the write-side repository.
type OrderQueriesTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	getAll     queries.GetAllOrdersQueryHandler
	getOne     queries.GetOrderQueryHandler
}

func (suite *OrderQueriesTestSuite) SetupSuite() {
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

	suite.repository = orderrepo.NewGormOrderRepository(db)
	suite.getAll = queries.NewGetAllOrdersQueryHandler(db)
	suite.getOne = queries.NewGetOrderQueryHandler(db)
}

func (suite *OrderQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *OrderQueriesTestSuite) seedOrder(id int64) *order.Order {
	aggregate, err := order.NewOrder(id, 7, time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	price, err := kernel.NewMoneyFromCents(1000)
	suite.Require().NoError(err)
	pizza, err := item.New(item.CategoryPizza, map[string]any{
		"size":     "LARGE",
		"toppings": []string{"pepperoni"},
	}, price)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(pizza))

	suite.Require().NoError(suite.repository.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *OrderQueriesTestSuite) TestGetAllOrders_Empty() {
	result, err := suite.getAll.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *OrderQueriesTestSuite) TestGetAllOrders_ProjectsSummaries() {
	suite.seedOrder(2)
	suite.seedOrder(1)

	result, err := suite.getAll.Handle(context.Background(), queries.NewGetAllOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	// sorted by order id
	suite.EqualValues(1, result[0].OrderID)
	suite.EqualValues(2, result[1].OrderID)

	first := result[0]
	suite.EqualValues(7, first.UserID)
	suite.Equal("PENDING", first.Status)
	suite.Equal("2026-08-30T18:00:00Z", first.OrderDate)
	// large pizza: 10.00 base plus 3.00 surcharge
	suite.InDelta(13.00, first.TotalAmount, 0.001)

	suite.Require().Len(first.Items, 1)
	suite.Equal("PIZZA", first.Items[0].Category)
	suite.Equal("LARGE", first.Items[0].Attributes["size"])
	suite.InDelta(13.00, first.Items[0].Price, 0.001)
	suite.Positive(first.Items[0].ItemID)
}

func (suite *OrderQueriesTestSuite) TestGetAllOrders_InvalidQuery() {
	_, err := suite.getAll.Handle(context.Background(), queries.GetAllOrdersQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetAllOrdersQueryIsNotConstructed)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_Found() {
	aggregate, err := order.NewOrder(5, 9, time.Now().UTC())
	suite.Require().NoError(err)

	price, err := kernel.NewMoneyFromCents(300)
	suite.Require().NoError(err)
	drink, err := item.New(item.CategoryDrink, map[string]any{"name": "Cola", "volumeMl": 330}, price)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(drink))

	details, err := order.NewDeliveryDetails("1 Via Roma", "19:30", 42)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.SetDeliveryDetails(details))

	suite.Require().NoError(suite.repository.Add(context.Background(), aggregate))

	query, err := queries.NewGetOrderQuery(5)
	suite.Require().NoError(err)

	summary, err := suite.getOne.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.EqualValues(5, summary.OrderID)
	suite.EqualValues(9, summary.UserID)
	suite.Require().Len(summary.Items, 1)
	suite.Equal("DRINK", summary.Items[0].Category)
	suite.EqualValues(330, summary.Items[0].Attributes["volumeMl"])

	suite.Require().NotNil(summary.DeliveryDetails)
	suite.Equal("1 Via Roma", summary.DeliveryDetails.Address)
	suite.EqualValues(42, summary.DeliveryDetails.DriverID)
}

func (suite *OrderQueriesTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(404)
	suite.Require().NoError(err)

	_, err = suite.getOne.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesTestSuite) TestNewGetOrderQuery_InvalidID() {
	_, err := queries.NewGetOrderQuery(0)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestOrderQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesTestSuite))
}
