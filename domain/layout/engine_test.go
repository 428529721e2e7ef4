package layout

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig(800, 600)
	cfg.Seed = 42
	return cfg
}

func TestRadiusFor_SqrtScale(t *testing.T) {
	// Max value maps to max radius, zero to min radius
	assert.InDelta(t, 110, radiusFor(100, 100, 55, 110), 1e-9)
	assert.InDelta(t, 55, radiusFor(0, 100, 55, 110), 1e-9)

	// Quarter of the max value gives half the radius range
	mid := radiusFor(25, 100, 55, 110)
	assert.InDelta(t, 55+(110-55)*0.5, mid, 1e-9)

	// Monotonic in value
	assert.Less(t, radiusFor(10, 100, 55, 110), radiusFor(50, 100, 55, 110))
}

func TestNewEngine_InitialPositions(t *testing.T) {
	engine := NewEngine(testConfig(), []Weighted{
		{ID: "a", Value: 10},
		{ID: "b", Value: 40},
	})

	nodes := engine.Snapshot()
	require.Len(t, nodes, 2)

	for _, n := range nodes {
		assert.InDelta(t, 400, n.X, 25+1, "starts near the viewport center x")
		assert.InDelta(t, 300, n.Y, 25+1, "starts near the viewport center y")
		assert.GreaterOrEqual(t, n.Radius, 55.0)
		assert.LessOrEqual(t, n.Radius, 110.0)
	}

	// Heavier node gets the bigger bubble
	assert.Greater(t, nodes[1].Radius, nodes[0].Radius)
}

func TestSettle_SeparatesOverlaps(t *testing.T) {
	cfg := testConfig()
	engine := NewEngine(cfg, []Weighted{
		{ID: "a", Value: 46},
		{ID: "b", Value: 121},
		{ID: "c", Value: 31},
		{ID: "d", Value: 90},
	})

	nodes := engine.Settle(2000)
	require.Len(t, nodes, 4)
	assert.True(t, engine.Settled())

	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			dist := math.Hypot(b.X-a.X, b.Y-a.Y)
			minDist := a.Radius + b.Radius + cfg.CollidePadding
			// Soft collision never fully converges; allow a small tolerance
			assert.Greater(t, dist, minDist*0.85,
				"nodes %s and %s still overlap: dist=%f min=%f", a.ID, b.ID, dist, minDist)
		}
	}
}

func TestSettle_DeterministicWithSeed(t *testing.T) {
	items := []Weighted{{ID: "a", Value: 10}, {ID: "b", Value: 20}, {ID: "c", Value: 5}}

	first := NewEngine(testConfig(), items).Settle(2000)
	second := NewEngine(testConfig(), items).Settle(2000)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.InDelta(t, first[i].X, second[i].X, 1e-9)
		assert.InDelta(t, first[i].Y, second[i].Y, 1e-9)
	}
}

func TestDrag_PinsAndReleases(t *testing.T) {
	engine := NewEngine(testConfig(), []Weighted{
		{ID: "a", Value: 10},
		{ID: "b", Value: 20},
	})
	engine.Settle(2000)

	engine.Seize("a")
	engine.Drag("a", 100, 100)
	for i := 0; i < 10; i++ {
		engine.Step()
	}

	nodes := engine.Snapshot()
	var dragged Node
	for _, n := range nodes {
		if n.ID == "a" {
			dragged = n
		}
	}
	assert.True(t, dragged.Pinned)
	assert.InDelta(t, 100, dragged.X, 1e-9, "pinned node sits exactly at the drag position")
	assert.InDelta(t, 100, dragged.Y, 1e-9)

	// Seizing reheats the simulation
	assert.False(t, engine.Settled())

	engine.Release("a")
	nodes = engine.Settle(2000)
	for _, n := range nodes {
		assert.False(t, n.Pinned)
	}
	assert.True(t, engine.Settled())
}

func TestDrag_IgnoresUnknownAndUnseized(t *testing.T) {
	engine := NewEngine(testConfig(), []Weighted{{ID: "a", Value: 10}})
	before := engine.Snapshot()

	engine.Drag("a", 999, 999) // not seized
	engine.Seize("missing")
	engine.Drag("missing", 1, 1)
	engine.Release("missing")

	after := engine.Snapshot()
	assert.Equal(t, before[0].X, after[0].X)
	assert.Equal(t, before[0].Y, after[0].Y)
}

func TestRun_PublishesFramesUntilCancelled(t *testing.T) {
	engine := NewEngine(testConfig(), []Weighted{
		{ID: "a", Value: 10},
		{ID: "b", Value: 20},
	})

	ctx, cancel := context.WithCancel(context.Background())
	frames := engine.Run(ctx, time.Millisecond)

	first, ok := <-frames
	require.True(t, ok)
	assert.Len(t, first, 2)

	cancel()
	for range frames {
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	engine := NewEngine(testConfig(), []Weighted{{ID: "a", Value: 10}})

	snap := engine.Snapshot()
	snap[0].X = -12345

	fresh := engine.Snapshot()
	assert.NotEqual(t, -12345.0, fresh[0].X)
}
