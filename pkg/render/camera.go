package render

// Mouse sensitivities of the interactive viewers
const (
	OrbitDegreesPerPixel = 0.3
	ZoomPerNotch         = 0.3
)

// Orbit rotates the camera by a mouse drag of dx, dy pixels.
// Azimuth wraps around, elevation stops at the poles.
func (s *Settings) Orbit(dx, dy float32) {
	s.Azimuth += dx * OrbitDegreesPerPixel
	s.Elevation += dy * OrbitDegreesPerPixel

	s.Elevation = clamp(s.Elevation, MinElevation, MaxElevation)
	s.Azimuth = wrapDegrees(s.Azimuth)
}

// Zoom moves the camera by a number of scroll notches, positive zooms in
func (s *Settings) Zoom(notches float32) {
	s.Distance -= notches * ZoomPerNotch
	s.Distance = clamp(s.Distance, MinDistance, MaxDistance)
}

// ResetCamera restores the default camera, keeping colors and lighting
func (s *Settings) ResetCamera() {
	d := DefaultSettings()
	s.Elevation = d.Elevation
	s.Azimuth = d.Azimuth
	s.Distance = d.Distance
	s.FOV = d.FOV
}

// wrapDegrees maps an angle into [-180,180]
func wrapDegrees(a float32) float32 {
	for a > MaxAzimuth {
		a -= 360
	}
	for a < MinAzimuth {
		a += 360
	}
	return a
}

// View is a fixed camera orientation
type View int

const (
	ViewFront View = iota
	ViewBack
	ViewLeft
	ViewRight
	ViewTop
	ViewBottom
)

func (v View) String() string {
	switch v {
	case ViewFront:
		return "front"
	case ViewBack:
		return "back"
	case ViewLeft:
		return "left"
	case ViewRight:
		return "right"
	case ViewTop:
		return "top"
	case ViewBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// SetView points the camera along one of the preset directions. Distance
// and field of view are kept. Top and bottom stop at the elevation limits.
func (s *Settings) SetView(v View) {
	switch v {
	case ViewFront:
		s.Elevation, s.Azimuth = 0, 0
	case ViewBack:
		s.Elevation, s.Azimuth = 0, 180
	case ViewLeft:
		s.Elevation, s.Azimuth = 0, -90
	case ViewRight:
		s.Elevation, s.Azimuth = 0, 90
	case ViewTop:
		s.Elevation, s.Azimuth = MaxElevation, 0
	case ViewBottom:
		s.Elevation, s.Azimuth = MinElevation, 0
	}
}
