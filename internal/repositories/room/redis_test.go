package room

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestPing() {
	err := s.repo.Ping(context.Background())
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestPingUnreachable() {
	s.mr.Close()

	err := s.repo.Ping(context.Background())
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestEnsureRoomCreates() {
	room, err := s.repo.EnsureRoom(context.Background(), &EnsureRoomInput{
		RoomID: "AB12C9",
	})
	s.Require().NoError(err)
	s.Require().NotNil(room)
	s.Equal("AB12C9", room.ID)
	s.False(room.CreatedAt.IsZero())
}

func (s *RedisRepositoryTestSuite) TestEnsureRoomIsIdempotent() {
	first, err := s.repo.EnsureRoom(context.Background(), &EnsureRoomInput{
		RoomID: "AB12C9",
	})
	s.Require().NoError(err)

	// Ensuring the same room again is not an error and keeps the
	// original record
	second, err := s.repo.EnsureRoom(context.Background(), &EnsureRoomInput{
		RoomID: "AB12C9",
	})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestEnsureRoomValidation() {
	_, err := s.repo.EnsureRoom(context.Background(), nil)
	s.Error(err)

	_, err = s.repo.EnsureRoom(context.Background(), &EnsureRoomInput{})
	s.Error(err)
}
