package model_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"

	"fermenta.to/Fermenta/pkg/model"
)

type PriceTestSuite struct {
	suite.Suite
}

func TestPriceTestSuite(t *testing.T) {
	suite.Run(t, new(PriceTestSuite))
}

func (suite *PriceTestSuite) TestNormalize_ArrayShape() {
	list, err := model.NormalizePriceJSON([]byte(`[{"size":"0.4L","price":6.5},{"size":"0.2L","price":4}]`))

	suite.Require().NoError(err)
	suite.Equal(model.PriceList{{Size: "0.4L", Price: 6.5}, {Size: "0.2L", Price: 4}}, list)
}

func (suite *PriceTestSuite) TestNormalize_ArrayShapeDropsNonPositive() {
	list, err := model.NormalizePriceJSON([]byte(`[{"size":"0.4L","price":0},{"size":"0.2L","price":-1},{"size":"1L","price":11}]`))

	suite.Require().NoError(err)
	suite.Equal(model.PriceList{{Size: "1L", Price: 11}}, list)
}

func (suite *PriceTestSuite) TestNormalize_MapShape() {
	list, err := model.NormalizePriceJSON([]byte(`{"0.4L":6.5,"0.2L":4}`))

	suite.Require().NoError(err)
	suite.Equal(model.PriceList{{Size: "0.2L", Price: 4}, {Size: "0.4L", Price: 6.5}}, list)
}

func (suite *PriceTestSuite) TestNormalize_NestedMapShape() {
	list, err := model.NormalizePriceJSON([]byte(`{"0.4L":{"price":6.5},"1L":{"price":0}}`))

	suite.Require().NoError(err)
	suite.Equal(model.PriceList{{Size: "0.4L", Price: 6.5}}, list)
}

func (suite *PriceTestSuite) TestNormalize_EmptyInput() {
	list, err := model.NormalizePriceJSON(nil)

	suite.Require().NoError(err)
	suite.Nil(list)
}

func (suite *PriceTestSuite) TestNormalize_BadShapeReturnsError() {
	_, err := model.NormalizePriceJSON([]byte(`"6.50"`))

	suite.Error(err)
}

func (suite *PriceTestSuite) TestDisplayPrices_PrefersCanonicalList() {
	entry := model.TapEntry{
		Prices:      model.PriceList{{Size: "0.4L", Price: 6.5}},
		PriceSmall:  pointy.Float64(4),
		PriceMedium: pointy.Float64(6),
		PriceLarge:  pointy.Float64(11),
	}

	suite.Equal(model.PriceList{{Size: "0.4L", Price: 6.5}}, entry.DisplayPrices())
}

func (suite *PriceTestSuite) TestDisplayPrices_FallsBackToLegacyColumns() {
	entry := model.TapEntry{
		PriceSmall:  pointy.Float64(4),
		PriceMedium: pointy.Float64(0),
		PriceLarge:  pointy.Float64(11),
	}

	suite.Equal(model.PriceList{{Size: "0.2L", Price: 4}, {Size: "1L", Price: 11}}, entry.DisplayPrices())
}

func (suite *PriceTestSuite) TestDisplayPrices_NoPrices() {
	entry := model.TapEntry{}

	suite.Empty(entry.DisplayPrices())
}

func (suite *PriceTestSuite) TestScan_NormalizesLegacyMapRow() {
	var list model.PriceList

	err := list.Scan([]byte(`{"0.33L":{"price":5}}`))

	suite.Require().NoError(err)
	suite.Equal(model.PriceList{{Size: "0.33L", Price: 5}}, list)
}

func (suite *PriceTestSuite) TestValue_WritesCanonicalArray() {
	list := model.PriceList{{Size: "0.4L", Price: 6.5}}

	value, err := list.Value()

	suite.Require().NoError(err)
	suite.JSONEq(`[{"size":"0.4L","price":6.5}]`, string(value.([]byte)))
}

func (suite *PriceTestSuite) TestValue_EmptyListIsNull() {
	var list model.PriceList

	value, err := list.Value()

	suite.Require().NoError(err)
	suite.Nil(value)
}
