package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// DeliveryRepository using PostgreSQL containers.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *deliveryrepo.GormDeliveryRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.DeliveryHistoryDTO{},
	))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries, delivery_history").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_ValidState_Success() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	state, err := delivery.NewDeliveryState(orderID, delivery.Instant, suite.now())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", orderID, state).Once()

	suite.Require().NoError(suite.repository.Add(ctx, state))

	loaded, err := suite.repository.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, loaded.CurrentStatus())
	suite.Equal(delivery.Instant, loaded.ServiceMode())
	suite.Len(loaded.History(), 1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsHistoryAndDeadline() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	start := suite.now()
	state, err := delivery.NewDeliveryState(orderID, delivery.HomeTrial, start)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()

	suite.Require().NoError(suite.repository.Add(ctx, state))

	suite.Require().NoError(state.Advance(delivery.PickedUp, start.Add(5*time.Minute)))
	suite.Require().NoError(state.Advance(delivery.TrialWait, start.Add(10*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, state))

	loaded, err := suite.repository.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(delivery.TrialWait, loaded.CurrentStatus())
	suite.Require().Len(loaded.History(), 3)
	suite.Equal(delivery.Assigned, loaded.History()[0].Status)
	suite.Equal(state.TrialDeadline(), loaded.TrialDeadline())
	suite.False(loaded.CourierReleased())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsCourierReleased() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	state, err := delivery.NewDeliveryState(orderID, delivery.Instant, suite.now())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()

	suite.Require().NoError(suite.repository.Add(ctx, state))

	suite.Require().NoError(state.Advance(delivery.Cancelled, suite.now()))
	suite.True(state.MarkCourierReleased())
	suite.Require().NoError(suite.repository.Update(ctx, state))

	loaded, err := suite.repository.Get(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(delivery.Cancelled, loaded.CurrentStatus())
	suite.True(loaded.CourierReleased())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetAllInTrialWait_ReturnsOnlyWaiting() {
	ctx := context.Background()
	start := suite.now()

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()

	waiting, err := delivery.NewDeliveryState(kernel.NewUUID(), delivery.HomeTrial, start)
	suite.Require().NoError(err)
	suite.Require().NoError(waiting.Advance(delivery.PickedUp, start))
	suite.Require().NoError(waiting.Advance(delivery.TrialWait, start))
	suite.Require().NoError(suite.repository.Add(ctx, waiting))

	past, err := delivery.NewDeliveryState(kernel.NewUUID(), delivery.HomeTrial, start)
	suite.Require().NoError(err)
	suite.Require().NoError(past.Advance(delivery.PickedUp, start))
	suite.Require().NoError(past.Advance(delivery.TrialWait, start))
	suite.Require().NoError(past.EndTrial(start.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, past))

	instant, err := delivery.NewDeliveryState(kernel.NewUUID(), delivery.Instant, start)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, instant))

	states, err := suite.repository.GetAllInTrialWait(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(states, 1)
	suite.True(states[0].OrderID().IsEqual(waiting.OrderID()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDeliveryRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
