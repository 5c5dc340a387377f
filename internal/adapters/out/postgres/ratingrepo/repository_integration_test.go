package ratingrepo_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "movers/internal/adapters/out/postgres"
	"movers/internal/adapters/out/postgres/pgtest"
	"movers/internal/adapters/out/postgres/ratingrepo"
	"movers/internal/core/domain/model/kernel"
	"movers/internal/core/domain/model/rating"
	"movers/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
)

type RatingRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *ratingrepo.GormRatingRepository
}

func (suite *RatingRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.Require().NoError(postgresadapter.Migrate(pg.DB))
}

func (suite *RatingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = ratingrepo.NewGormRatingRepository(suite.pg.DB)
}

func (suite *RatingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *RatingRepositoryIntegrationTestSuite) add(moverID kernel.UUID, orderID *kernel.UUID, score int) {
	r, err := rating.NewRating(kernel.NewUUID(), kernel.NewUUID(), moverID, orderID, score, "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), r))
}

func (suite *RatingRepositoryIntegrationTestSuite) TestScoreAggregate_NoRatings() {
	agg, err := suite.repository.ScoreAggregate(context.Background(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Equal(services.ScoreAggregate{}, agg)
}

func (suite *RatingRepositoryIntegrationTestSuite) TestScoreAggregate_SumsOnlyOwnRatings() {
	moverID, other := kernel.NewUUID(), kernel.NewUUID()
	orderID := kernel.NewUUID()
	suite.add(moverID, &orderID, 5)
	suite.add(moverID, nil, 3)
	suite.add(moverID, nil, 4)
	suite.add(other, nil, 1)

	agg, err := suite.repository.ScoreAggregate(context.Background(), moverID)
	suite.Require().NoError(err)
	suite.Equal(services.ScoreAggregate{Sum: 12, Count: 3}, agg)

	avg, err := services.NewRatingAggregator().Average(agg)
	suite.Require().NoError(err)
	suite.InDelta(4.0, avg, 1e-9)
}

func (suite *RatingRepositoryIntegrationTestSuite) TestScoreCheckConstraint() {
	err := suite.pg.DB.Exec(
		"INSERT INTO ratings (id, user_id, mover_id, score, created_at) VALUES (?, ?, ?, 9, now())",
		kernel.NewUUID().String(), kernel.NewUUID().String(), kernel.NewUUID().String(),
	).Error
	suite.Require().Error(err)
}

func TestRatingRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RatingRepositoryIntegrationTestSuite))
}
