package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"fermenta.to/Fermenta/pkg/model"
)

type TapListTestSuite struct {
	RepositorySuite
}

func TestTapListTestSuite(t *testing.T) {
	suite.Run(t, new(TapListTestSuite))
}

func (suite *TapListTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *TapListTestSuite) TestAddTapEntry_RetiresPreviousHolderOfTapNumber() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "tap_entries" SET "active"=(.+) WHERE pub_id = (.+) AND tap_number = (.+) AND active = (.+)`).
		WithArgs(false, sqlmock.AnyArg(), 5, 1, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectQuery(`^INSERT INTO "tap_entries" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("12"))
	suite.mock.ExpectCommit()

	entry, err := suite.repository.AddTapEntry(context.Background(), model.TapEntry{
		PubID:     5,
		BeerID:    42,
		TapNumber: 1,
		Prices:    model.PriceList{{Size: "0.4L", Price: 6.5}},
		Active:    true,
		Visible:   true,
	})

	suite.Require().NoError(err)
	suite.Equal(uint(12), entry.ID)
	suite.Equal(1, entry.TapNumber)
}

func (suite *TapListTestSuite) TestAddTapEntry_NoTapNumberSkipsRetirement() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "tap_entries" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("13"))
	suite.mock.ExpectCommit()

	entry, err := suite.repository.AddTapEntry(context.Background(), model.TapEntry{PubID: 5, BeerID: 42, Active: true, Visible: true})

	suite.Require().NoError(err)
	suite.Equal(uint(13), entry.ID)
}

func (suite *TapListTestSuite) TestAddTapEntry_InsertErrorRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "tap_entries" SET "active"=(.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectQuery(`^INSERT INTO "tap_entries" (.+)`).WillReturnError(gorm.ErrInvalidData)
	suite.mock.ExpectRollback()

	entry, err := suite.repository.AddTapEntry(context.Background(), model.TapEntry{PubID: 5, BeerID: 42, TapNumber: 1})

	suite.Nil(entry)
	suite.EqualError(err, "unsupported data")
}

func (suite *TapListTestSuite) TestGetTapList_FiltersInactiveAndHidden() {
	suite.expectTapListRow(`[{"size":"0.4L","price":6.5}]`)

	entries, err := suite.repository.GetTapList(context.Background(), 5)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("Tipopils", entries[0].Beer.Name)
	suite.Equal(model.PriceList{{Size: "0.4L", Price: 6.5}}, entries[0].Prices)
}

func (suite *TapListTestSuite) TestGetTapList_NormalizesLegacyMapPricesOnScan() {
	suite.expectTapListRow(`{"0.4L":{"price":6},"0.2L":4}`)

	entries, err := suite.repository.GetTapList(context.Background(), 5)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(model.PriceList{{Size: "0.2L", Price: 4}, {Size: "0.4L", Price: 6}}, entries[0].Prices)
}

// One visible active row for pub 5 plus the brewery and style preloads.
func (suite *TapListTestSuite) expectTapListRow(pricesJSON string) {
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "tap_entries" (.+) WHERE tap_entries.pub_id = (.+) AND tap_entries.active = (.+) AND tap_entries.visible = (.+)`).
		WithArgs(5, true, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pub_id", "beer_id", "tap_number", "prices", "Beer__id", "Beer__name", "Beer__brewery_id", "Beer__style_id"}).
			AddRow(1, 5, 42, 1, pricesJSON, 42, "Tipopils", 10, 3))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "breweries" (.+)`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(10, "Birrificio Italiano"))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "beer_styles" (.+)`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Pils"))
}
