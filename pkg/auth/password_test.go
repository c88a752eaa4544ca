package auth_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"golang.org/x/crypto/bcrypt"

	"fermenta.to/Fermenta/pkg/auth"
)

type PasswordTestSuite struct {
	suite.Suite
}

func TestPasswordTestSuite(t *testing.T) {
	suite.Run(t, new(PasswordTestSuite))
}

func (suite *PasswordTestSuite) TestHashPassword_UsesCostTwelve() {
	hash, err := auth.HashPassword("luppolo-amaro")

	suite.Require().NoError(err)

	cost, err := bcrypt.Cost([]byte(hash))
	suite.Require().NoError(err)
	suite.Equal(12, cost)
}

func (suite *PasswordTestSuite) TestCheckPassword_RoundTrip() {
	hash, err := auth.HashPassword("luppolo-amaro")
	suite.Require().NoError(err)

	suite.NoError(auth.CheckPassword(&hash, "luppolo-amaro"))
}

func (suite *PasswordTestSuite) TestCheckPassword_WrongPassword() {
	hash, err := auth.HashPassword("luppolo-amaro")
	suite.Require().NoError(err)

	suite.ErrorIs(auth.CheckPassword(&hash, "malto-dolce"), auth.ErrInvalidCredentials)
}

func (suite *PasswordTestSuite) TestCheckPassword_SocialAccountHasNoHash() {
	suite.ErrorIs(auth.CheckPassword(nil, "anything"), auth.ErrSocialAccount)
}

func (suite *PasswordTestSuite) TestCheckPassword_GarbageHashIsInvalid() {
	suite.ErrorIs(auth.CheckPassword(pointy.String("not-a-hash"), "anything"), auth.ErrInvalidCredentials)
}
