package collision

import (
	"context"
	"math/rand"
	"testing"

	"github.com/piwi3910/ShapeFill/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneOf(shapes ...*model.Shape) *model.Scene {
	sc := model.NewScene()
	for _, s := range shapes {
		sc.Add(s)
	}
	return sc
}

func TestMayPlace_EmptyScene(t *testing.T) {
	assert.True(t, MayPlace(unitSquare(0, 0), model.NewScene()))
}

func TestMayPlace_OverlappingCandidateRejected(t *testing.T) {
	scene := sceneOf(unitSquare(0, 0))
	assert.False(t, MayPlace(unitSquare(0.5, 0), scene))
}

func TestMayPlace_DisjointCandidateAccepted(t *testing.T) {
	scene := sceneOf(unitSquare(0, 0))
	assert.True(t, MayPlace(unitSquare(3, 3), scene))
}

func TestMayPlace_SkipsCandidateByIdentity(t *testing.T) {
	member := unitSquare(0, 0)
	scene := sceneOf(member)
	assert.True(t, MayPlace(member, scene), "a shape never collides with itself")

	twin := unitSquare(0, 0)
	assert.False(t, MayPlace(twin, scene), "an equal but distinct shape still collides")
}

func TestMayPlace_ContainedCandidateRejected(t *testing.T) {
	scene := sceneOf(square(0, 0, 10))
	assert.False(t, MayPlace(square(0, 0, 1), scene), "hiding inside a placed shape")
	assert.False(t, MayPlace(square(0, 0, 20), scene), "swallowing a placed shape")
}

func TestMayPlace_StopsAtFirstContact(t *testing.T) {
	scene := sceneOf(unitSquare(0, 0), unitSquare(100, 100), unitSquare(200, 200))
	var counts TierCounts

	ok := MayPlaceCounted(unitSquare(0.2, 0), scene, &counts)
	assert.False(t, ok)
	assert.Equal(t, 1, counts.Total(), "remaining members must not be classified")
}

func TestMayPlaceCounted_RecordsEveryPair(t *testing.T) {
	scene := sceneOf(unitSquare(0, 0), unitSquare(100, 100), unitSquare(1.1, 0))
	var counts TierCounts

	ok := MayPlaceCounted(unitSquare(0, 5), scene, &counts)
	assert.True(t, ok)
	assert.Equal(t, 3, counts.Total())
}

func TestMayPlaceParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	scene := model.NewScene()
	for i := 0; i < 60; i++ {
		scene.Add(randomShape(rng))
	}

	for i := 0; i < 200; i++ {
		candidate := randomShape(rng)
		want := MayPlace(candidate, scene)
		got, err := MayPlaceParallel(context.Background(), candidate, scene, 4)
		require.NoError(t, err)
		require.Equal(t, want, got, "candidate %d", i)
	}
}

func TestMayPlaceParallel_SkipsSelf(t *testing.T) {
	member := unitSquare(0, 0)
	scene := sceneOf(member, unitSquare(10, 10), unitSquare(20, 20))
	ok, err := MayPlaceParallel(context.Background(), member, scene, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMayPlaceParallel_Collision(t *testing.T) {
	scene := sceneOf(unitSquare(10, 10), unitSquare(20, 20), unitSquare(0, 0), unitSquare(30, 30))
	ok, err := MayPlaceParallel(context.Background(), unitSquare(0.5, 0), scene, 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMayPlaceParallel_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scene := sceneOf(unitSquare(10, 10), unitSquare(20, 20))
	_, err := MayPlaceParallel(ctx, unitSquare(50, 50), scene, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMayPlaceParallel_SingleWorkerFallsBack(t *testing.T) {
	scene := sceneOf(unitSquare(0, 0))
	ok, err := MayPlaceParallel(context.Background(), unitSquare(3, 3), scene, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
