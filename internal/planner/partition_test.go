package planner

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venueAt(id string, lat, lng float64, categories ...string) ClassifiedVenue {
	if len(categories) == 0 {
		categories = []string{"Museum"}
	}
	return Classify(Venue{ID: id, Name: id, Categories: categories, Latitude: lat, Longitude: lng})
}

func ids(venues []ClassifiedVenue) []string {
	out := make([]string, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.ID)
	}
	return out
}

func TestSplitSingleDayGetsWholePool(t *testing.T) {
	t.Parallel()
	pool := []ClassifiedVenue{venueAt("a", 1, 1), venueAt("b", 2, 2), venueAt("c", 3, 3)}
	out := NewPartitioner().Split(pool, 1)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"a", "b", "c"}, ids(out[0]))
}

func TestSplitSmallPoolEveryDayGetsWholePool(t *testing.T) {
	t.Parallel()
	pool := []ClassifiedVenue{venueAt("a", 1, 1), venueAt("b", 2, 2)}
	out := NewPartitioner().Split(pool, 3)
	require.Len(t, out, 3)
	for _, day := range out {
		assert.Equal(t, []string{"a", "b"}, ids(day))
	}
}

func TestSplitNaNFallsBackToRoundRobin(t *testing.T) {
	t.Parallel()
	var pool []ClassifiedVenue
	for i := 0; i < 9; i++ {
		lat := float64(i)
		if i == 4 {
			lat = math.NaN()
		}
		pool = append(pool, venueAt(strconv.Itoa(i), lat, float64(i)))
	}

	var fallbackErr error
	p := NewPartitioner()
	p.OnFallback = func(err error) { fallbackErr = err }

	out := p.Split(pool, 3)
	require.Len(t, out, 3)
	assert.Error(t, fallbackErr)
	assert.Equal(t, []string{"0", "3", "6"}, ids(out[0]))
	assert.Equal(t, []string{"1", "4", "7"}, ids(out[1]))
	assert.Equal(t, []string{"2", "5", "8"}, ids(out[2]))
}

type panickingStrategy struct{}

func (panickingStrategy) Partition([]MatrixPoint, int) ([][]int, error) {
	panic("boom")
}

type failingStrategy struct{}

func (failingStrategy) Partition([]MatrixPoint, int) ([][]int, error) {
	return nil, errors.New("library error")
}

func TestSplitPrimaryFailureNeverEscapes(t *testing.T) {
	t.Parallel()
	var pool []ClassifiedVenue
	for i := 0; i < 4; i++ {
		pool = append(pool, venueAt(strconv.Itoa(i), float64(i), 0))
	}
	for _, strategy := range []PartitionStrategy{panickingStrategy{}, failingStrategy{}} {
		p := &Partitioner{Primary: strategy}
		out := p.Split(pool, 2)
		require.Len(t, out, 2)
		assert.Equal(t, []string{"0", "2"}, ids(out[0]))
		assert.Equal(t, []string{"1", "3"}, ids(out[1]))
	}
}

func TestSplitKMeansSeparatesDistantGroups(t *testing.T) {
	t.Parallel()
	var pool []ClassifiedVenue
	// three venues around Paris, three around Lyon
	for i := 0; i < 3; i++ {
		pool = append(pool, venueAt("paris-"+strconv.Itoa(i), 48.85+float64(i)*0.01, 2.35))
		pool = append(pool, venueAt("lyon-"+strconv.Itoa(i), 45.75+float64(i)*0.01, 4.85))
	}

	out := NewPartitioner().Split(pool, 2)
	require.Len(t, out, 2)

	total := 0
	for _, day := range out {
		total += len(day)
		prefixes := map[string]bool{}
		for _, v := range day {
			prefixes[v.ID[:4]] = true
		}
		assert.LessOrEqual(t, len(prefixes), 1, "a day mixes cities: %v", ids(day))
	}
	assert.Equal(t, 6, total)
}

func TestKMeansSeededIsReproducible(t *testing.T) {
	t.Parallel()
	var points []MatrixPoint
	for i := 0; i < 4; i++ {
		points = append(points, MatrixPoint{ID: "paris-" + strconv.Itoa(i), Lat: 48.85 + float64(i)*0.01, Lng: 2.35})
		points = append(points, MatrixPoint{ID: "lyon-" + strconv.Itoa(i), Lat: 45.75 + float64(i)*0.01, Lng: 4.85})
	}

	first, err := KMeansStrategy{Seed: 42}.Partition(points, 2)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := KMeansStrategy{Seed: 42}.Partition(points, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	require.Len(t, first, 2)
	for _, g := range first {
		require.Len(t, g, 4)
		city := points[g[0]].ID[:4]
		for _, idx := range g {
			assert.Equal(t, city, points[idx].ID[:4])
		}
	}

	_, err = KMeansStrategy{Seed: 7}.Partition(points[:1], 2)
	assert.Error(t, err)
}

func TestRebalanceMovesTwoFromLargest(t *testing.T) {
	t.Parallel()
	groups := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{10},
		{11},
	}
	// total 12, k 3, minPerDay 4
	rebalance(groups, 12)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, groups[0])
	assert.Equal(t, []int{10, 8, 9}, groups[1])
	// donor would keep 6, which is not more than minPerDay+2
	assert.Equal(t, []int{11}, groups[2])
}

func TestRebalanceSkipsSmallPools(t *testing.T) {
	t.Parallel()
	groups := [][]int{{0, 1, 2, 3}, {}}
	rebalance(groups, 4)
	assert.Len(t, groups[0], 4)
	assert.Empty(t, groups[1])
}

func TestRebalanceDonorKeepsMargin(t *testing.T) {
	t.Parallel()
	// total 6, k 2, minPerDay 3: moving two would leave the donor with 4
	groups := [][]int{{0, 1, 2, 3, 4, 5}, {}}
	rebalance(groups, 6)
	assert.Len(t, groups[0], 6)
	assert.Empty(t, groups[1])
}
