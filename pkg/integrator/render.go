package integrator

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/tmayer/go-stl-raytracer/pkg/camera"
	"github.com/tmayer/go-stl-raytracer/pkg/film"
	"github.com/tmayer/go-stl-raytracer/pkg/filter"
	"github.com/tmayer/go-stl-raytracer/pkg/sampler"
	"github.com/tmayer/go-stl-raytracer/pkg/scene"
)

// RenderConfig controls how the image is partitioned across workers.
type RenderConfig struct {
	// TileSize is the edge length in pixels of the square tiles handed
	// to workers
	TileSize int

	// MaxDepth bounds recursion for integrators that spawn secondary
	// rays
	MaxDepth int

	// Seed is the base seed from which every tile's sampler seed is
	// derived, so a different base produces a different sample pattern
	// while renders with the same base stay reproducible
	Seed int64
}

// DefaultRenderConfig returns the render configuration used when the caller
// has no preference.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize: 64,
		MaxDepth: 1,
	}
}

// Render renders the scene through the camera onto a new film, one worker
// per tile. Each worker samples only its own tile with its own sampler clone
// and accumulates into its own film, so workers share nothing but read
// access to the scene; the tile films are merged after all workers finish.
// Cancelling the context aborts the render between pixels.
func Render(ctx context.Context, sc *scene.Scene, cam camera.Camera, smp sampler.Sampler, flt filter.Filter, resolution image.Point, integ Integrator, config RenderConfig) (*film.Film, error) {
	result := film.New(resolution, flt)
	tiles := tileGrid(resolution, config.TileSize)
	tileFilms := make([]*film.Film, len(tiles))

	g, ctx := errgroup.WithContext(ctx)
	for i, tile := range tiles {
		i, tile := i, tile
		// Derive every tile's seed from the base seed so tiles never
		// share a random stream and changing the base reshuffles all
		// sample patterns
		tileSampler := smp.CloneWithSeed(config.Seed + int64(i))
		tileFilm := result.Tile(tile)
		g.Go(func() error {
			if err := renderTile(ctx, sc, cam, tileSampler, integ, tile, tileFilm, config.MaxDepth); err != nil {
				return err
			}
			tileFilms[i] = tileFilm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, tileFilm := range tileFilms {
		result.Merge(tileFilm)
	}
	return result, nil
}

func renderTile(ctx context.Context, sc *scene.Scene, cam camera.Camera, smp sampler.Sampler, integ Integrator, bounds image.Rectangle, tileFilm *film.Film, maxDepth int) error {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			pixel := image.Pt(x, y)
			smp.StartPixel(pixel)
			for smp.StartNextSample() {
				cs := sampler.GetCameraSample(smp, pixel)
				ray := cam.GenerateRay(cs)
				radiance := integ.RayColor(ray, sc, smp, 0, maxDepth)
				tileFilm.AddSample(cs.FilmPoint, radiance)
			}
		}
	}
	return nil
}

// tileGrid partitions the image into disjoint tiles of at most tileSize on
// each edge, covering every pixel exactly once.
func tileGrid(resolution image.Point, tileSize int) []image.Rectangle {
	if tileSize <= 0 {
		tileSize = DefaultRenderConfig().TileSize
	}

	var tiles []image.Rectangle
	for y0 := 0; y0 < resolution.Y; y0 += tileSize {
		for x0 := 0; x0 < resolution.X; x0 += tileSize {
			x1 := min(x0+tileSize, resolution.X)
			y1 := min(y0+tileSize, resolution.Y)
			tiles = append(tiles, image.Rect(x0, y0, x1, y1))
		}
	}
	return tiles
}
