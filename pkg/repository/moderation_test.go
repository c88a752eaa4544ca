package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"fermenta.to/Fermenta/pkg/model"
	"fermenta.to/Fermenta/pkg/repository"
)

type ModerationTestSuite struct {
	RepositorySuite
}

func TestModerationTestSuite(t *testing.T) {
	suite.Run(t, new(ModerationTestSuite))
}

func (suite *ModerationTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *ModerationTestSuite) TestSetReviewStatus_MissingReviewReturnsSentinel() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "reviews" SET (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	err := suite.repository.SetReviewStatus(context.Background(), 99, model.ReviewApproved)

	suite.ErrorIs(err, repository.ErrReviewNotFound)
}

func (suite *ModerationTestSuite) TestSetReportStatus_UpdatesRow() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`^UPDATE "reports" SET (.+)`).
		WithArgs("resolved", sqlmock.AnyArg(), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.SetReportStatus(context.Background(), 4, model.ReportResolved))
}

func (suite *ModerationTestSuite) TestApprovePublicanRequest_GrantsRoleAndCreatesPub() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "publican_requests" (.+)`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "pub_name", "city", "vat_number", "business_name", "status"}).
			AddRow(3, 7, "The Hop Garden", "Milano", "12345678901", "Hop Garden SRL", "pending"))
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "users" (.+)`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "roles"}).AddRow(7, `["customer"]`))
	suite.mock.ExpectExec(`^UPDATE "users" SET (.+)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectQuery(`^INSERT INTO "pubs" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("20"))
	suite.mock.ExpectExec(`^UPDATE "publican_requests" SET (.+)`).
		WithArgs("approved", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	pub, err := suite.repository.ApprovePublicanRequest(context.Background(), 3)

	suite.Require().NoError(err)
	suite.Equal(uint(20), pub.ID)
	suite.Equal("The Hop Garden", pub.Name)
	suite.Equal("12345678901", pub.VATNumber)
	suite.Require().NotNil(pub.OwnerID)
	suite.Equal(uint(7), *pub.OwnerID)
}

func (suite *ModerationTestSuite) TestApprovePublicanRequest_AlreadyDecided() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "publican_requests" (.+)`).
		WithArgs(3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).AddRow(3, 7, "approved"))
	suite.mock.ExpectRollback()

	pub, err := suite.repository.ApprovePublicanRequest(context.Background(), 3)

	suite.Nil(pub)
	suite.ErrorIs(err, repository.ErrRequestAlreadyDecided)
}

func (suite *ModerationTestSuite) TestRejectPublicanRequest_MarksPendingRow() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "publican_requests" (.+)`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).AddRow(5, 7, "pending"))
	suite.mock.ExpectExec(`^UPDATE "publican_requests" SET (.+)`).
		WithArgs("rejected", sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.RejectPublicanRequest(context.Background(), 5))
}

func (suite *ModerationTestSuite) TestRejectPublicanRequest_AlreadyDecided() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "publican_requests" (.+)`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).AddRow(5, 7, "rejected"))
	suite.mock.ExpectRollback()

	err := suite.repository.RejectPublicanRequest(context.Background(), 5)

	suite.ErrorIs(err, repository.ErrRequestAlreadyDecided)
}

func (suite *ModerationTestSuite) TestRejectPublicanRequest_MissingRow() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT (.+) FROM "publican_requests" (.+)`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	suite.mock.ExpectRollback()

	err := suite.repository.RejectPublicanRequest(context.Background(), 5)

	suite.ErrorIs(err, repository.ErrPublicanRequestNotFound)
}
