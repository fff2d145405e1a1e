package planner

import "math"

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two coordinates in
// degrees. It is a ranking signal only, never a travel time.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

type MatrixPoint struct {
	ID  string
	Lat float64
	Lng float64
}

// DistanceMatrix holds pairwise kilometres keyed by point id.
type DistanceMatrix map[string]map[string]float64

func (m DistanceMatrix) Between(a, b string) float64 {
	if row, ok := m[a]; ok {
		if d, ok := row[b]; ok {
			return d
		}
	}
	return math.Inf(1)
}

// -------------- great-circle matrix ---------------

type DistanceMatrixService interface {
	ComputeDistances(points []MatrixPoint) DistanceMatrix
}

// HaversineMatrix computes every pair on demand. It holds no state, so one
// instance is shared by all requests.
type HaversineMatrix struct{}

func NewHaversineMatrix() *HaversineMatrix {
	return &HaversineMatrix{}
}

func (h *HaversineMatrix) ComputeDistances(points []MatrixPoint) DistanceMatrix {
	n := len(points)
	mat := make(DistanceMatrix, n)
	for _, p := range points {
		mat[p.ID] = make(map[string]float64, n)
	}

	for i := 0; i < n; i++ {
		a := points[i]
		mat[a.ID][a.ID] = 0
		for j := i + 1; j < n; j++ {
			b := points[j]
			km := HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
			mat[a.ID][b.ID] = km
			mat[b.ID][a.ID] = km
		}
	}
	return mat
}
