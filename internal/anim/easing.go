package anim

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOutCubic applies smooth easing to t in [0, 1].
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// triangle folds a phase in [0, 1) into a rise-and-fall ramp in [0, 1].
func triangle(phase float64) float64 {
	phase -= float64(int64(phase))
	if phase < 0 {
		phase++
	}
	if phase < 0.5 {
		return phase * 2
	}
	return 2 - phase*2
}
