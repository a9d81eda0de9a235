package render

// Color is an RGBA color with components in [0,1]
type Color [4]float32

// Bytes converts the color to 8-bit channels, clamping out of range values
func (c Color) Bytes() [4]uint8 {
	var out [4]uint8
	for i, v := range c {
		out[i] = uint8(clamp(v, 0, 1)*255 + 0.5)
	}
	return out
}

// Settings holds every user-adjustable rendering parameter.
// Angles are in degrees.
type Settings struct {
	// Camera
	Elevation float32 `yaml:"elevation"`
	Azimuth   float32 `yaml:"azimuth"`
	Distance  float32 `yaml:"distance"`
	FOV       float32 `yaml:"fov"`

	// Colors
	ModelColor Color `yaml:"model_color"`
	Background Color `yaml:"background"`
	EdgeColor  Color `yaml:"edge_color"`

	// Lighting
	LightDir  [3]float32 `yaml:"light_dir"`
	Ambient   float32    `yaml:"ambient"`
	Diffuse   float32    `yaml:"diffuse"`
	Specular  float32    `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`

	// Display
	Wireframe bool    `yaml:"wireframe"`
	EdgeWidth float32 `yaml:"edge_width"`

	// Export
	ExportWidth  int `yaml:"export_width"`
	ExportHeight int `yaml:"export_height"`
	Supersample  int `yaml:"supersample"`
}

// UI ranges applied by Clamped
const (
	MinElevation, MaxElevation = -89, 89
	MinAzimuth, MaxAzimuth     = -180, 180
	MinDistance, MaxDistance   = 0.5, 20
	MinFOV, MaxFOV             = 10, 120
	MinShininess, MaxShininess = 1, 128
	MinEdgeWidth, MaxEdgeWidth = 0.5, 5
	MinExportSize              = 64
	MaxSupersample             = 4
)

// DefaultSettings returns the settings a fresh viewer starts with
func DefaultSettings() Settings {
	return Settings{
		Elevation: 30,
		Azimuth:   -45,
		Distance:  3,
		FOV:       45,

		ModelColor: Color{0.310, 0.765, 0.969, 1.0},
		Background: Color{0.118, 0.118, 0.180, 1.0},
		EdgeColor:  Color{0.004, 0.341, 0.608, 1.0},

		LightDir:  [3]float32{0.5, 0.8, 1.0},
		Ambient:   0.25,
		Diffuse:   0.70,
		Specular:  0.40,
		Shininess: 32,

		Wireframe: false,
		EdgeWidth: 1,

		ExportWidth:  1920,
		ExportHeight: 1080,
		Supersample:  1,
	}
}

// Clamped returns a copy with every value forced into its UI range.
// Settings itself enforces nothing; callers at input boundaries use this.
func (s Settings) Clamped() Settings {
	s.Elevation = clamp(s.Elevation, MinElevation, MaxElevation)
	s.Azimuth = clamp(s.Azimuth, MinAzimuth, MaxAzimuth)
	s.Distance = clamp(s.Distance, MinDistance, MaxDistance)
	s.FOV = clamp(s.FOV, MinFOV, MaxFOV)

	s.ModelColor = s.ModelColor.clamped()
	s.Background = s.Background.clamped()
	s.EdgeColor = s.EdgeColor.clamped()

	s.Ambient = clamp(s.Ambient, 0, 1)
	s.Diffuse = clamp(s.Diffuse, 0, 1)
	s.Specular = clamp(s.Specular, 0, 1)
	s.Shininess = clamp(s.Shininess, MinShininess, MaxShininess)

	s.EdgeWidth = clamp(s.EdgeWidth, MinEdgeWidth, MaxEdgeWidth)
	s.ExportWidth = max(s.ExportWidth, MinExportSize)
	s.ExportHeight = max(s.ExportHeight, MinExportSize)
	s.Supersample = min(max(s.Supersample, 1), MaxSupersample)
	return s
}

func (c Color) clamped() Color {
	for i := range c {
		c[i] = clamp(c[i], 0, 1)
	}
	return c
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
