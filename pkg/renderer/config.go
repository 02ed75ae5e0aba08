package renderer

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Handedness of the coordinate system the mesh's vertex positions assume.
// Right-handed meshes are mirrored into the renderer's left-handed space
// during normalization.
const (
	LeftHanded  = "left"
	RightHanded = "right"
)

// ErrInvalidConfig is wrapped by every config validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config describes how to render a mesh.
type Config struct {
	// Width and Height of the output image in pixels
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Crop trims fully transparent rows and columns from the edges of
	// the output. The result may be smaller than Width x Height.
	Crop bool `toml:"crop"`

	// Handedness is the coordinate system of the mesh file, "left" or
	// "right"
	Handedness string `toml:"handedness"`

	Sampler  SamplerConfig  `toml:"sampler"`
	Camera   CameraConfig   `toml:"camera"`
	Material MaterialConfig `toml:"material"`
	Lights   []LightConfig  `toml:"lights"`
}

// SamplerConfig configures the stratified sampler used for every pixel.
type SamplerConfig struct {
	// XStrata and YStrata give the per-pixel sample count as a grid of
	// strata
	XStrata int `toml:"x_strata"`
	YStrata int `toml:"y_strata"`

	// Jitter randomizes each sample's position within its stratum
	Jitter bool `toml:"jitter"`

	// Seed makes renders reproducible
	Seed int64 `toml:"seed"`
}

// Spherical positions an object relative to the origin: radius is the
// distance, theta the inclination from the +z axis in degrees, phi the
// azimuth in degrees.
type Spherical struct {
	Radius float64 `toml:"radius"`
	Theta  float64 `toml:"theta"`
	Phi    float64 `toml:"phi"`
}

// CameraConfig configures an orthographic camera positioned on a sphere
// around the mesh, looking at the origin.
type CameraConfig struct {
	Position Spherical `toml:"position"`

	// ZNear and ZFar are the clipping plane distances from the camera
	ZNear float64 `toml:"z_near"`
	ZFar  float64 `toml:"z_far"`
}

// MaterialConfig configures the Phong material applied to the whole mesh.
type MaterialConfig struct {
	// Color is the surface color as RGB channels in [0,1]
	Color [3]float64 `toml:"color"`

	Ambient   float64 `toml:"ambient"`
	Diffuse   float64 `toml:"diffuse"`
	Specular  float64 `toml:"specular"`
	Shininess float64 `toml:"shininess"`
}

// LightConfig configures one point light positioned in spherical coordinates
// around the mesh.
type LightConfig struct {
	Position Spherical `toml:"position"`

	// Intensity is the emitted power per unit solid angle as RGB
	Intensity [3]float64 `toml:"intensity"`
}

// DefaultConfig returns a left-handed configuration with a frontal camera, a
// white matte material and no lights.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		Handedness: LeftHanded,
		Sampler: SamplerConfig{
			XStrata: 2,
			YStrata: 2,
			Jitter:  true,
		},
		Camera: CameraConfig{
			Position: Spherical{Radius: 1},
			ZNear:    0,
			ZFar:     10,
		},
		Material: MaterialConfig{
			Color:     [3]float64{1, 1, 1},
			Ambient:   0.05,
			Diffuse:   0.7,
			Specular:  0.0,
			Shininess: 80,
		},
	}
}

// LoadConfig reads a TOML configuration file. Settings the file omits keep
// their DefaultConfig values.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses TOML configuration bytes over the defaults and
// validates the result.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig(0, 0)
	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports the first violated constraint, if any.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Handedness != LeftHanded && c.Handedness != RightHanded {
		return fmt.Errorf("%w: handedness %q must be %q or %q", ErrInvalidConfig, c.Handedness, LeftHanded, RightHanded)
	}
	if c.Sampler.XStrata <= 0 || c.Sampler.YStrata <= 0 {
		return fmt.Errorf("%w: sampler strata %dx%d must be positive", ErrInvalidConfig, c.Sampler.XStrata, c.Sampler.YStrata)
	}
	if c.Camera.Position.Radius <= 0 {
		return fmt.Errorf("%w: camera radius %g must be positive", ErrInvalidConfig, c.Camera.Position.Radius)
	}
	if c.Camera.ZNear >= c.Camera.ZFar {
		return fmt.Errorf("%w: near plane %g must be in front of far plane %g", ErrInvalidConfig, c.Camera.ZNear, c.Camera.ZFar)
	}
	for i, light := range c.Lights {
		if light.Position.Radius <= 0 {
			return fmt.Errorf("%w: light %d radius %g must be positive", ErrInvalidConfig, i, light.Position.Radius)
		}
	}
	return nil
}
