package places

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters 计算大圆距离使用的地球半径
const EarthRadiusMeters = 6371000.0

// Distance 用 haversine 公式计算两点间的大圆距离（米）
func Distance(a, b s2.LatLng) float64 {
	dLat := (b.Lat - a.Lat).Radians()
	dLng := (b.Lng - a.Lng).Radians()

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(a.Lat.Radians())*math.Cos(b.Lat.Radians())*sinLng*sinLng

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceMeters 四舍五入到整米
func DistanceMeters(a, b s2.LatLng) int {
	return int(math.Round(Distance(a, b)))
}
