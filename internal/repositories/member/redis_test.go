package member

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/diceroom/internal/events"
	"github.com/KirkDiggler/diceroom/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	bus    events.Bus
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

	// Create the event bus
	bus, err := events.NewRedis(&events.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.bus = bus

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
		EventBus:    s.bus,
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

func (s *RedisRepositoryTestSuite) TestUpsertCreatesMember() {
	out, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AB12C9",
		Name:   "Seal",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Member)
	s.NotEmpty(out.Member.ID)
	s.Equal("Seal", out.Member.Name)
	s.Equal("AB12C9", out.Member.RoomID)
	s.False(out.Member.LastSeen.IsZero())
}

func (s *RedisRepositoryTestSuite) TestUpsertKeepsExistingID() {
	first, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AB12C9",
		Name:   "Seal",
	})
	s.Require().NoError(err)

	time.Sleep(2 * time.Millisecond)

	second, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AB12C9",
		Name:   "Seal",
	})
	s.Require().NoError(err)

	s.Equal(first.Member.ID, second.Member.ID)
	s.True(second.Member.LastSeen.After(first.Member.LastSeen))
}

func (s *RedisRepositoryTestSuite) TestSameNameDifferentRooms() {
	first, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AAAAAA",
		Name:   "Seal",
	})
	s.Require().NoError(err)

	second, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "BBBBBB",
		Name:   "Seal",
	})
	s.Require().NoError(err)

	// (name, room) is the identity key
	s.NotEqual(first.Member.ID, second.Member.ID)
}

func (s *RedisRepositoryTestSuite) TestGetRoomMembersOrderedByLastSeen() {
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		_, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
			RoomID: "AB12C9",
			Name:   name,
		})
		s.Require().NoError(err)
		time.Sleep(2 * time.Millisecond)
	}

	// Refresh Alpha so it becomes the most recently seen
	_, err := s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AB12C9",
		Name:   "Alpha",
	})
	s.Require().NoError(err)

	out, err := s.repo.GetRoomMembers(context.Background(), &GetRoomMembersInput{
		RoomID: "AB12C9",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Members, 3)
	s.Equal("Alpha", out.Members[0].Name)
	s.Equal("Charlie", out.Members[1].Name)
	s.Equal("Bravo", out.Members[2].Name)
}

func (s *RedisRepositoryTestSuite) TestGetRoomMembersEmptyRoom() {
	out, err := s.repo.GetRoomMembers(context.Background(), &GetRoomMembersInput{
		RoomID: "NEWNEW",
	})
	s.Require().NoError(err)
	s.Empty(out.Members)
}

func (s *RedisRepositoryTestSuite) TestUpsertPublishesChangeEvent() {
	ch, cancel, err := s.bus.Subscribe(context.Background(), "AB12C9")
	s.Require().NoError(err)
	defer cancel()

	_, err = s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AB12C9",
		Name:   "Seal",
	})
	s.Require().NoError(err)

	select {
	case event := <-ch:
		s.Equal(models.EventInsert, event.Type)
		s.Equal(models.TableUsers, event.Table)
		s.Require().NotNil(event.NewMember)
		s.Equal("Seal", event.NewMember.Name)
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
	}

	// A refresh of the same member publishes an update
	_, err = s.repo.UpsertMember(context.Background(), &UpsertMemberInput{
		RoomID: "AB12C9",
		Name:   "Seal",
	})
	s.Require().NoError(err)

	select {
	case event := <-ch:
		s.Equal(models.EventUpdate, event.Type)
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
	}
}

func (s *RedisRepositoryTestSuite) TestUpsertValidation() {
	_, err := s.repo.UpsertMember(context.Background(), nil)
	s.Error(err)

	_, err = s.repo.UpsertMember(context.Background(), &UpsertMemberInput{Name: "Seal"})
	s.Error(err)

	_, err = s.repo.UpsertMember(context.Background(), &UpsertMemberInput{RoomID: "AB12C9"})
	s.Error(err)
}
