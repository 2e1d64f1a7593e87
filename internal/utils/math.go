// internal/utils/math.go
package utils

// Clamp ограничивает v диапазоном [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapDegrees нормализует угол в диапазон [-180, 180)
func WrapDegrees(angle float32) float32 {
	for angle >= 180 {
		angle -= 360
	}
	for angle < -180 {
		angle += 360
	}
	return angle
}
