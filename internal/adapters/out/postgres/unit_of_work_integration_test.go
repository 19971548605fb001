package postgres_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that assignment and delivery
// writes share one transaction boundary.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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
		&assignmentrepo.AssignmentDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.DeliveryHistoryDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE assignments, deliveries, delivery_history").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newDispatch(orderID kernel.UUID) (*delivery.Assignment, *delivery.DeliveryState) {
	window, err := delivery.NewETAWindow(15, 25)
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	assignment, err := delivery.NewAssignment(
		orderID, kernel.NewUUID(), kernel.NewUUID(), delivery.Instant, window, now)
	suite.Require().NoError(err)

	state, err := delivery.NewDeliveryState(orderID, delivery.Instant, now)
	suite.Require().NoError(err)

	return assignment, state
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsBothAggregates() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	assignment, state := suite.newDispatch(orderID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, assignment))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, state))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	loaded, err := check.AssignmentRepository().GetLiveByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(assignment))

	loadedState, err := check.DeliveryRepository().Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, loadedState.CurrentStatus())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBothAggregates() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	assignment, state := suite.newDispatch(orderID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, assignment))
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, state))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err := check.AssignmentRepository().GetLiveByOrderID(ctx, orderID)
	suite.Require().Error(err)

	_, err = check.DeliveryRepository().Get(ctx, orderID)
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_Fails() {
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
