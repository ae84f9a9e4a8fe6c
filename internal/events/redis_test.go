package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/diceroom/internal/models"
)

type RedisBusTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	bus    Bus
}

func (s *RedisBusTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the bus
	bus, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.bus = bus
}

func (s *RedisBusTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisBusTestSuite(t *testing.T) {
	suite.Run(t, new(RedisBusTestSuite))
}

func (s *RedisBusTestSuite) receive(ch <-chan *models.ChangeEvent) *models.ChangeEvent {
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
		return nil
	}
}

func (s *RedisBusTestSuite) TestPublishAndSubscribe() {
	ctx := context.Background()

	ch, cancel, err := s.bus.Subscribe(ctx, "AB12C9")
	s.Require().NoError(err)
	defer cancel()

	err = s.bus.Publish(ctx, &models.ChangeEvent{
		Type:   models.EventInsert,
		Table:  models.TableRolls,
		RoomID: "AB12C9",
		NewRoll: &models.Roll{
			ID:     "roll-1",
			RoomID: "AB12C9",
		},
	})
	s.Require().NoError(err)

	event := s.receive(ch)
	s.Equal(models.EventInsert, event.Type)
	s.Equal(models.TableRolls, event.Table)
	s.Require().NotNil(event.NewRoll)
	s.Equal("roll-1", event.NewRoll.ID)
}

func (s *RedisBusTestSuite) TestSubscribeIsScopedToRoom() {
	ctx := context.Background()

	ch, cancel, err := s.bus.Subscribe(ctx, "AB12C9")
	s.Require().NoError(err)
	defer cancel()

	// An event in another room must not be delivered
	err = s.bus.Publish(ctx, &models.ChangeEvent{
		Type:   models.EventInsert,
		Table:  models.TableRolls,
		RoomID: "ZZZZZZ",
	})
	s.Require().NoError(err)

	err = s.bus.Publish(ctx, &models.ChangeEvent{
		Type:   models.EventDelete,
		Table:  models.TableRolls,
		RoomID: "AB12C9",
	})
	s.Require().NoError(err)

	event := s.receive(ch)
	s.Equal("AB12C9", event.RoomID)
	s.Equal(models.EventDelete, event.Type)
}

func (s *RedisBusTestSuite) TestSubscribeAllSeesEveryRoom() {
	ctx := context.Background()

	ch, cancel, err := s.bus.SubscribeAll(ctx)
	s.Require().NoError(err)
	defer cancel()

	for _, roomID := range []string{"AAAAAA", "BBBBBB"} {
		err = s.bus.Publish(ctx, &models.ChangeEvent{
			Type:   models.EventInsert,
			Table:  models.TableUsers,
			RoomID: roomID,
		})
		s.Require().NoError(err)
	}

	first := s.receive(ch)
	second := s.receive(ch)
	s.ElementsMatch([]string{"AAAAAA", "BBBBBB"}, []string{first.RoomID, second.RoomID})
}

func (s *RedisBusTestSuite) TestPublishValidation() {
	ctx := context.Background()

	err := s.bus.Publish(ctx, nil)
	s.Error(err)

	err = s.bus.Publish(ctx, &models.ChangeEvent{Type: models.EventInsert})
	s.Error(err)
}

func (s *RedisBusTestSuite) TestCancelClosesChannel() {
	ctx := context.Background()

	ch, cancel, err := s.bus.Subscribe(ctx, "AB12C9")
	s.Require().NoError(err)

	cancel()

	select {
	case _, ok := <-ch:
		s.False(ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		s.FailNow("channel was not closed after cancel")
	}
}
