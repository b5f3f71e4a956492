package playgrounds

import (
	"math"
	"sort"

	"parcacote/internal/geo"
)

// Rank attaches distances against ref, drops entries outside radiusKm,
// sorts ascending by distance and truncates to limit.
//
//   - Without a reference location no distances are computed and the radius
//     filter is a no-op.
//   - Entries without a computed distance sort last; ties keep input order.
//   - radiusKm <= 0 disables the radius filter, limit <= 0 disables
//     truncation ("show more").
//
// The input slice is not mutated.
func Rank(list []Playground, ref *geo.Point, radiusKm float64, limit int) []Playground {
	out := make([]Playground, len(list))
	copy(out, list)

	if ref != nil {
		for i := range out {
			d := geo.DistanceKm(ref.Lat, ref.Lng, out[i].Latitude, out[i].Longitude)
			out[i].DistanceKm = &d
		}

		if radiusKm > 0 {
			kept := out[:0]
			for _, p := range out {
				if p.DistanceKm != nil && *p.DistanceKm <= radiusKm {
					kept = append(kept, p)
				}
			}
			out = kept
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return distanceOrInf(out[i]) < distanceOrInf(out[j])
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distanceOrInf(p Playground) float64 {
	if p.DistanceKm == nil {
		return math.Inf(1)
	}
	return *p.DistanceKm
}
