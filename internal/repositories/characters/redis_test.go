package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mkerr "github.com/thornvale/mud/internal/errors"
	"github.com/thornvale/mud/internal/game"
	mockuuid "github.com/thornvale/mud/internal/uuid/mocks"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	mockCtrl   *gomock.Controller
	uuidGen    *mockuuid.MockGenerator
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.uuidGen = mockuuid.NewMockGenerator(s.mockCtrl)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        s.mockClient,
		UUIDGenerator: s.uuidGen,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func testCharacter(id, name string) *game.Character {
	char := game.NewCharacter(id, name, "village-square")
	return char
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	char := testCharacter("char-1", "Mira")

	expected, err := json.Marshal(toData(char))
	s.Require().NoError(err)

	s.mock.ExpectExists("character:char-1").SetVal(0)
	s.mock.ExpectSet("character:char-1", expected, 0).SetVal("OK")
	s.mock.ExpectSet("charname:mira", "char-1", 0).SetVal("OK")
	s.mock.ExpectSAdd("characters:all", "char-1").SetVal(1)

	s.NoError(s.repo.Create(ctx, char))
}

func (s *RedisRepoTestSuite) TestCreateGeneratesID() {
	ctx := context.Background()
	char := testCharacter("", "Mira")
	s.uuidGen.EXPECT().New().Return("generated-id")

	s.mock.ExpectExists("character:generated-id").SetVal(0)
	s.mock.ExpectSet("character:generated-id", mustMarshal(s.T(), char, "generated-id"), 0).SetVal("OK")
	s.mock.ExpectSet("charname:mira", "generated-id", 0).SetVal("OK")
	s.mock.ExpectSAdd("characters:all", "generated-id").SetVal(1)

	s.NoError(s.repo.Create(ctx, char))
	s.Equal("generated-id", char.ID)
}

func (s *RedisRepoTestSuite) TestCreateDuplicateFails() {
	ctx := context.Background()
	char := testCharacter("char-1", "Mira")

	s.mock.ExpectExists("character:char-1").SetVal(1)

	err := s.repo.Create(ctx, char)
	s.Require().Error(err)
	s.True(mkerr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	char := testCharacter("char-1", "Mira")

	raw, err := json.Marshal(toData(char))
	s.Require().NoError(err)
	s.mock.ExpectGet("character:char-1").SetVal(string(raw))

	got, err := s.repo.Get(ctx, "char-1")
	s.Require().NoError(err)
	s.Equal("Mira", got.Name)
	s.Equal(25, got.Save.Stats.Health)
}

func (s *RedisRepoTestSuite) TestGetNotFound() {
	ctx := context.Background()
	s.mock.ExpectGet("character:missing").RedisNil()

	_, err := s.repo.Get(ctx, "missing")
	s.Require().Error(err)
	s.True(mkerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGetByName() {
	ctx := context.Background()
	char := testCharacter("char-1", "Mira")

	raw, err := json.Marshal(toData(char))
	s.Require().NoError(err)

	s.mock.ExpectGet("charname:mira").SetVal("char-1")
	s.mock.ExpectGet("character:char-1").SetVal(string(raw))

	got, err := s.repo.GetByName(ctx, "Mira")
	s.Require().NoError(err)
	s.Equal("char-1", got.ID)
}

func (s *RedisRepoTestSuite) TestGetByNameNotFound() {
	ctx := context.Background()
	s.mock.ExpectGet("charname:nobody").RedisNil()

	_, err := s.repo.GetByName(ctx, "Nobody")
	s.Require().Error(err)
	s.True(mkerr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestUpdateDependencyError() {
	ctx := context.Background()
	char := testCharacter("char-1", "Mira")

	s.mock.CustomMatch(func(expected, actual []interface{}) error {
		// UpdatedAt is stamped inside Update, so match the key only.
		return nil
	}).ExpectSet("character:char-1", nil, 0).SetErr(errors.New("redis down"))

	err := s.repo.Update(ctx, char)
	s.Require().Error(err)
	s.Equal(mkerr.CodeUnavailable, mkerr.GetCode(err))
}

func mustMarshal(t *testing.T, char *game.Character, id string) []byte {
	t.Helper()
	clone := char.Clone()
	clone.ID = id
	raw, err := json.Marshal(toData(clone))
	if err != nil {
		t.Fatal(err)
	}
	return raw
}
