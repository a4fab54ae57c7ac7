package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plinkolabs/plinko/internal/dependencies/mocks"
	"github.com/plinkolabs/plinko/internal/dependencies/random"
)

func TestDropAllLeftLandsInEdgeSlot(t *testing.T) {
	rnd := mocks.NewMockRandom()
	// MockRandom returns 0 when its queue is empty, so no queueing
	// means every bounce goes left.
	svc := New(rnd)

	result := svc.Drop()
	assert.Equal(t, 0, result.Slot)
	assert.Equal(t, MaxPayout(), result.Payout)
	assert.Len(t, result.Path, Rows)
}

func TestDropAllRightLandsInOppositeEdge(t *testing.T) {
	rnd := mocks.NewMockRandom()
	for i := 0; i < Rows; i++ {
		rnd.QueueIntn(1)
	}
	svc := New(rnd)

	result := svc.Drop()
	assert.Equal(t, Rows, result.Slot)
	assert.Equal(t, MaxPayout(), result.Payout)
}

func TestDropSlotCountsRightBounces(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0)
	svc := New(rnd)

	result := svc.Drop()
	assert.Equal(t, 3, result.Slot)
	assert.Equal(t, uint64(100), result.Payout)
	assert.Equal(t, []int{1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 0}, result.Path)
}

func TestPayoutsAreSymmetric(t *testing.T) {
	for slot := 0; slot <= Rows; slot++ {
		assert.Equal(t, payouts[slot], payouts[Rows-slot], "slot %d", slot)
	}
}

func TestDropWithRealRandomStaysOnBoard(t *testing.T) {
	svc := New(random.New())

	for i := 0; i < 100; i++ {
		result := svc.Drop()
		assert.GreaterOrEqual(t, result.Slot, 0)
		assert.LessOrEqual(t, result.Slot, Rows)
		assert.NotZero(t, result.Payout)
	}
}
