package planner

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PartitionStrategy splits points into k groups of point indices.
type PartitionStrategy interface {
	Partition(points []MatrixPoint, k int) ([][]int, error)
}

// KMeansStrategy clusters on (lat, lng). With a zero Seed the kmeans package
// picks random starting centers; any other Seed gives k-means++ seeding from
// that value, so equal inputs always split the same way.
type KMeansStrategy struct {
	Seed int64
}

// Lloyd iterations stop early once fewer than this share of points move,
// matching the kmeans package defaults.
const (
	maxKMeansIterations = 96
	kmeansDeltaShare    = 0.01
)

func (s KMeansStrategy) Partition(points []MatrixPoint, k int) ([][]int, error) {
	if k <= 0 {
		return nil, errors.New("kmeans: k must be positive")
	}
	if len(points) < k {
		return nil, fmt.Errorf("kmeans: %d points cannot form %d clusters", len(points), k)
	}

	obs := make(clusters.Observations, 0, len(points))
	for _, p := range points {
		if !validCoordinate(p.Lat, p.Lng) {
			return nil, fmt.Errorf("kmeans: invalid coordinates for %q", p.ID)
		}
		obs = append(obs, clusters.Coordinates{p.Lat, p.Lng})
	}

	var cc clusters.Clusters
	var err error
	if s.Seed == 0 {
		cc, err = kmeans.New().Partition(obs, k)
	} else {
		cc = seededKMeans(obs, k, s.Seed)
	}
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}
	if len(cc) != k {
		return nil, fmt.Errorf("kmeans: expected %d clusters, got %d", k, len(cc))
	}

	groups := make([][]int, k)
	for i, o := range obs {
		c := cc.Nearest(o)
		groups[c] = append(groups[c], i)
	}
	return groups, nil
}

// seededKMeans places the first center on a random observation and each
// further one with probability proportional to its squared distance from the
// nearest chosen center, then runs Lloyd iterations.
func seededKMeans(obs clusters.Observations, k int, seed int64) clusters.Clusters {
	rng := rand.New(rand.NewSource(seed))

	cc := make(clusters.Clusters, 0, k)
	cc = append(cc, clusters.Cluster{Center: obs[rng.Intn(len(obs))].Coordinates()})
	weights := make([]float64, len(obs))
	for len(cc) < k {
		var sum float64
		for i, o := range obs {
			weights[i] = o.Distance(cc[cc.Nearest(o)].Center)
			sum += weights[i]
		}
		next := rng.Intn(len(obs))
		if sum > 0 {
			target := rng.Float64() * sum
			for i, w := range weights {
				target -= w
				if target < 0 {
					next = i
					break
				}
			}
		}
		cc = append(cc, clusters.Cluster{Center: obs[next].Coordinates()})
	}

	assigned := make([]int, len(obs))
	for i := range assigned {
		assigned[i] = -1
	}
	threshold := int(float64(len(obs)) * kmeansDeltaShare)
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changes := 0
		cc.Reset()
		for i, o := range obs {
			c := cc.Nearest(o)
			cc[c].Append(o)
			if assigned[i] != c {
				assigned[i] = c
				changes++
			}
		}
		for c := range cc {
			if len(cc[c].Observations) == 0 {
				cc[c].Center = obs[rng.Intn(len(obs))].Coordinates()
				changes++
				continue
			}
			cc[c].Recenter()
		}
		if changes <= threshold {
			break
		}
	}
	return cc
}

func validCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// RoundRobinStrategy assigns point i to group i mod k. It never fails.
type RoundRobinStrategy struct{}

func (RoundRobinStrategy) Partition(points []MatrixPoint, k int) ([][]int, error) {
	if k <= 0 {
		return nil, nil
	}
	groups := make([][]int, k)
	for i := range points {
		groups[i%k] = append(groups[i%k], i)
	}
	return groups, nil
}

// Partitioner splits the trip's venue pool into one candidate list per day.
type Partitioner struct {
	Primary  PartitionStrategy
	Fallback PartitionStrategy
	// OnFallback is called whenever the primary strategy fails.
	OnFallback func(err error)
}

func NewPartitioner() *Partitioner {
	return &Partitioner{
		Primary:  KMeansStrategy{},
		Fallback: RoundRobinStrategy{},
	}
}

// Split returns exactly days lists. With a single day, or no more venues than
// days, every day receives the whole pool.
func (p *Partitioner) Split(venues []ClassifiedVenue, days int) [][]ClassifiedVenue {
	if days <= 0 {
		return [][]ClassifiedVenue{}
	}
	out := make([][]ClassifiedVenue, days)
	if days == 1 || len(venues) <= days {
		for d := range out {
			out[d] = append([]ClassifiedVenue(nil), venues...)
		}
		return out
	}

	points := make([]MatrixPoint, len(venues))
	for i, v := range venues {
		points[i] = MatrixPoint{ID: v.ID, Lat: v.Latitude, Lng: v.Longitude}
	}

	groups, err := p.runPrimary(points, days)
	if err != nil {
		log.Printf("Clustering failed, falling back to round-robin: %v", err)
		if p.OnFallback != nil {
			p.OnFallback(err)
		}
		groups, _ = p.fallback().Partition(points, days)
	}

	rebalance(groups, len(venues))

	for d, g := range groups {
		for _, idx := range g {
			out[d] = append(out[d], venues[idx])
		}
	}
	return out
}

func (p *Partitioner) runPrimary(points []MatrixPoint, k int) (groups [][]int, err error) {
	if p.Primary == nil {
		return nil, errors.New("no primary partition strategy")
	}
	defer func() {
		if r := recover(); r != nil {
			groups, err = nil, fmt.Errorf("partition panic: %v", r)
		}
	}()
	groups, err = p.Primary.Partition(points, k)
	if err == nil && len(groups) != k {
		err = fmt.Errorf("partition returned %d groups, want %d", len(groups), k)
	}
	return groups, err
}

func (p *Partitioner) fallback() PartitionStrategy {
	if p.Fallback == nil {
		return RoundRobinStrategy{}
	}
	return p.Fallback
}

// rebalance is a single best-effort pass: a group below floor(total/k) takes
// two venues from the currently largest group when the donor keeps more than
// minPerDay+2 afterwards. Small pools (total <= 2k) are left alone.
func rebalance(groups [][]int, total int) {
	k := len(groups)
	if k == 0 || total <= 2*k {
		return
	}
	minPerDay := total / k
	for i := range groups {
		if len(groups[i]) >= minPerDay {
			continue
		}
		donor := largestGroup(groups)
		if donor == i || len(groups[donor])-2 <= minPerDay+2 {
			continue
		}
		n := len(groups[donor])
		moved := append([]int(nil), groups[donor][n-2:]...)
		groups[donor] = groups[donor][:n-2]
		groups[i] = append(groups[i], moved...)
	}
}

func largestGroup(groups [][]int) int {
	best := 0
	for i := 1; i < len(groups); i++ {
		if len(groups[i]) > len(groups[best]) {
			best = i
		}
	}
	return best
}
