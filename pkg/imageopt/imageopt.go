// Package imageopt shrinks the site's project screenshots and portraits
// into web sized JPEGs.
package imageopt

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxDimension = 1920
	DefaultQuality      = 80
	// OutputDir is created inside the source directory.
	OutputDir = "optimized"
)

type Options struct {
	MaxDimension int
	Quality      int
	Workers      int
}

// Result describes one processed file.
type Result struct {
	Source   string
	Output   string
	Width    int
	Height   int
	BytesIn  int64
	BytesOut int64
}

func (o Options) normalized() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// OptimizeDir converts every JPEG and PNG directly inside dir. Results come
// back in directory order; the first failure cancels the remaining work.
func OptimizeDir(ctx context.Context, dir string, opts Options) ([]Result, error) {
	opts = opts.normalized()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var sources []string
	for _, e := range entries {
		if e.IsDir() || !isSupported(e.Name()) {
			continue
		}
		sources = append(sources, filepath.Join(dir, e.Name()))
	}
	if len(sources) == 0 {
		return nil, nil
	}

	outDir := filepath.Join(dir, OutputDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	results := make([]Result, len(sources))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := OptimizeFile(src, outDir, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// OptimizeFile writes src as <outDir>/<name>.jpg.
func OptimizeFile(src, outDir string, opts Options) (Result, error) {
	opts = opts.normalized()

	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", src, err)
	}

	if err := ValidateSource(src, data); err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(src), err)
	}

	out, w, h, err := Compress(data, opts.MaxDimension, opts.Quality)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(src), err)
	}

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".jpg"
	dst := filepath.Join(outDir, name)
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return Result{
		Source:   src,
		Output:   dst,
		Width:    w,
		Height:   h,
		BytesIn:  int64(len(data)),
		BytesOut: int64(len(out)),
	}, nil
}

// Compress decodes a JPEG or PNG, scales it so the longer side is at most
// maxDimension and re-encodes it as JPEG.
func Compress(data []byte, maxDimension, quality int) ([]byte, int, int, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	// PNG transparency would turn black in JPEG
	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(resized, resized.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), width, height, nil
}

// fit keeps the aspect ratio and never upscales.
func fit(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	if width > height {
		h := int(float64(height) * float64(maxDimension) / float64(width))
		return maxDimension, max(h, 1)
	}
	w := int(float64(width) * float64(maxDimension) / float64(height))
	return max(w, 1), maxDimension
}
