package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AdamHavlicek/blurhash/internal/encoder"
	"github.com/AdamHavlicek/blurhash/internal/manifest"
	"github.com/AdamHavlicek/blurhash/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Workers   int
	Verbose   bool
	Previews  bool // write decoded placeholder files next to the manifest
	Quality   int  // JPEG preview quality, 0 = encoder default
}

// Pipeline orchestrates placeholder generation.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[blurhash] "+format+"\n", args...)
	}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	if p.cfg.Previews {
		p.logf("%s", p.registry.String())
	}

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images", len(sources))

	// Step 2: Process images in parallel. Each worker calls the codec on
	// its own buffers; results are stored by index.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.logf("processing: %s", s.Key)
			results[idx] = processImage(s, p.cfg, p.registry)
			if results[idx].err == nil {
				p.logf("done: %s → %s", s.Key, results[idx].asset.BlurHash)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[blurhash] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[blurhash] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:     p.cfg.Workers,
		ComponentsX: p.cfg.Profile.ComponentsX,
		ComponentsY: p.cfg.Profile.ComponentsY,
		MaxDim:      p.cfg.Profile.MaxDim,
	}
	m.ComputeStats()
	return m, nil
}
