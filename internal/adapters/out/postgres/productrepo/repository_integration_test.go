package productrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"
)

// ProductRepositoryIntegrationTestSuite verifies the stock mutation
// guarantees against a real PostgreSQL instance.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)
	suite.repository = productrepo.NewGormProductRepository(suite.db)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) seedProduct(stock int) *product.Product {
	price, err := kernel.NewMoney(1990)
	suite.Require().NoError(err)
	p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "Marraqueta kg", price, stock)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func (suite *ProductRepositoryIntegrationTestSuite) stockOf(id kernel.UUID) int {
	p, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	return p.Stock()
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDecrementStock_Succeeds() {
	ctx := context.Background()
	p := suite.seedProduct(10)

	suite.Require().NoError(suite.repository.DecrementStock(ctx, p.ID(), 4))

	suite.Equal(6, suite.stockOf(p.ID()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDecrementStock_InsufficientLeavesStockUntouched() {
	ctx := context.Background()
	p := suite.seedProduct(2)

	err := suite.repository.DecrementStock(ctx, p.ID(), 5)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)
	suite.Contains(err.Error(), "Marraqueta kg")
	suite.Equal(2, suite.stockOf(p.ID()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDecrementStock_ExactStockDrainsToZero() {
	ctx := context.Background()
	p := suite.seedProduct(3)

	suite.Require().NoError(suite.repository.DecrementStock(ctx, p.ID(), 3))

	suite.Equal(0, suite.stockOf(p.ID()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestRestoreStock_ReturnsUnits() {
	ctx := context.Background()
	p := suite.seedProduct(5)
	suite.Require().NoError(suite.repository.DecrementStock(ctx, p.ID(), 5))

	suite.Require().NoError(suite.repository.RestoreStock(ctx, p.ID(), 5))

	suite.Equal(5, suite.stockOf(p.ID()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestDecrementStock_UnknownProduct() {
	err := suite.repository.DecrementStock(context.Background(), kernel.NewUUID(), 1)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
