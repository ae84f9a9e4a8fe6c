package roll

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

func (s *RedisRepositoryTestSuite) createRoll(roomID string, results []int) *models.Roll {
	total := 0
	for _, r := range results {
		total += r
	}

	out, err := s.repo.CreateRoll(context.Background(), &CreateRollInput{
		RoomID:            roomID,
		UserName:          "Seal",
		DiceType:          "d6",
		DiceCount:         len(results),
		Results:           results,
		Total:             total,
		ResultDisplayMode: models.DisplayModeSum,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Roll)
	return out.Roll
}

func (s *RedisRepositoryTestSuite) receive(ch <-chan *models.ChangeEvent) *models.ChangeEvent {
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for event")
		return nil
	}
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetRoll() {
	created := s.createRoll("AB12C9", []int{2, 4, 6})
	s.NotEmpty(created.ID)
	s.False(created.CreatedAt.IsZero())
	s.Equal(12, created.Total)

	retrieved, err := s.repo.GetRoll(context.Background(), &GetRollInput{
		RollID: created.ID,
	})
	s.Require().NoError(err)
	s.Equal(created.ID, retrieved.ID)
	s.Equal("Seal", retrieved.UserName)
	s.Equal("d6", retrieved.DiceType)
	s.Equal([]int{2, 4, 6}, retrieved.Results)
	s.Equal(models.DisplayModeSum, retrieved.ResultDisplayMode)
}

func (s *RedisRepositoryTestSuite) TestGetRollNotFound() {
	_, err := s.repo.GetRoll(context.Background(), &GetRollInput{
		RollID: "missing",
	})
	s.ErrorIs(err, ErrRollNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetRecentRollsNewestFirstWithLimit() {
	var created []*models.Roll
	for i := 1; i <= 5; i++ {
		created = append(created, s.createRoll("AB12C9", []int{i}))
		// Keep creation timestamps strictly ordered
		time.Sleep(2 * time.Millisecond)
	}

	out, err := s.repo.GetRecentRolls(context.Background(), &GetRecentRollsInput{
		RoomID: "AB12C9",
		Limit:  4,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, 4)

	// The oldest of the five is not in the window
	s.Equal(created[4].ID, out.Rolls[0].ID)
	s.Equal(created[3].ID, out.Rolls[1].ID)
	s.Equal(created[2].ID, out.Rolls[2].ID)
	s.Equal(created[1].ID, out.Rolls[3].ID)
}

func (s *RedisRepositoryTestSuite) TestGetRecentRollsEmptyRoom() {
	out, err := s.repo.GetRecentRolls(context.Background(), &GetRecentRollsInput{
		RoomID: "NEWNEW",
		Limit:  4,
	})
	s.Require().NoError(err)
	s.Empty(out.Rolls)
}

func (s *RedisRepositoryTestSuite) TestUpdateRollPreservesMetadata() {
	target := 4
	out, err := s.repo.CreateRoll(context.Background(), &CreateRollInput{
		RoomID:            "AB12C9",
		UserName:          "Seal",
		DiceType:          "d6",
		DiceCount:         3,
		Results:           []int{2, 4, 6},
		Total:             1,
		ResultDisplayMode: models.DisplayModeStatistics,
		StatisticsTarget:  &target,
	})
	s.Require().NoError(err)

	updated, err := s.repo.UpdateRoll(context.Background(), &UpdateRollInput{
		RollID:  out.Roll.ID,
		Results: []int{4, 4, 1},
		Total:   2,
	})
	s.Require().NoError(err)
	s.Equal([]int{4, 4, 1}, updated.Roll.Results)
	s.Equal(2, updated.Roll.Total)

	// Author, dice kind/count, mode and target are untouched
	s.Equal("Seal", updated.Roll.UserName)
	s.Equal("d6", updated.Roll.DiceType)
	s.Equal(3, updated.Roll.DiceCount)
	s.Equal(models.DisplayModeStatistics, updated.Roll.ResultDisplayMode)
	s.Require().NotNil(updated.Roll.StatisticsTarget)
	s.Equal(4, *updated.Roll.StatisticsTarget)
}

func (s *RedisRepositoryTestSuite) TestDeleteRollRemovesFromWindow() {
	first := s.createRoll("AB12C9", []int{1})
	time.Sleep(2 * time.Millisecond)
	second := s.createRoll("AB12C9", []int{2})

	err := s.repo.DeleteRoll(context.Background(), &DeleteRollInput{
		RollID: second.ID,
	})
	s.Require().NoError(err)

	_, err = s.repo.GetRoll(context.Background(), &GetRollInput{RollID: second.ID})
	s.ErrorIs(err, ErrRollNotFound)

	out, err := s.repo.GetRecentRolls(context.Background(), &GetRecentRollsInput{
		RoomID: "AB12C9",
		Limit:  4,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, 1)
	s.Equal(first.ID, out.Rolls[0].ID)
}

func (s *RedisRepositoryTestSuite) TestDeleteRollNotFound() {
	err := s.repo.DeleteRoll(context.Background(), &DeleteRollInput{
		RollID: "missing",
	})
	s.ErrorIs(err, ErrRollNotFound)
}

func (s *RedisRepositoryTestSuite) TestWritesPublishChangeEvents() {
	ch, cancel, err := s.bus.Subscribe(context.Background(), "AB12C9")
	s.Require().NoError(err)
	defer cancel()

	created := s.createRoll("AB12C9", []int{3, 3})

	event := s.receive(ch)
	s.Equal(models.EventInsert, event.Type)
	s.Equal(models.TableRolls, event.Table)
	s.Require().NotNil(event.NewRoll)
	s.Equal(created.ID, event.NewRoll.ID)

	_, err = s.repo.UpdateRoll(context.Background(), &UpdateRollInput{
		RollID:  created.ID,
		Results: []int{5, 5},
		Total:   10,
	})
	s.Require().NoError(err)

	event = s.receive(ch)
	s.Equal(models.EventUpdate, event.Type)
	s.Require().NotNil(event.NewRoll)
	s.Equal(10, event.NewRoll.Total)

	err = s.repo.DeleteRoll(context.Background(), &DeleteRollInput{
		RollID: created.ID,
	})
	s.Require().NoError(err)

	event = s.receive(ch)
	s.Equal(models.EventDelete, event.Type)
	s.Require().NotNil(event.OldRoll)
	s.Equal(created.ID, event.OldRoll.ID)
}
