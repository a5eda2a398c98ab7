package dataset

import (
	"context"
	"embed"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/okian/chartkit/internal/domain/model"
	"github.com/okian/chartkit/pkg/logger"
)

//go:embed data/*.json
var embedded embed.FS

// Embedded dataset file names.
const (
	EmbeddedScatter     = "data/anscombe.json"
	EmbeddedRidership   = "data/ridership.json"
	EmbeddedAnnotations = "data/annotations.json"
)

// Source names the dataset files. Empty paths fall back to the embedded data.
type Source struct {
	ScatterPath     string
	RidershipPath   string
	AnnotationsPath string
}

// Load reads the three datasets concurrently.
func Load(ctx context.Context, src Source) (model.Datasets, error) {
	log := logger.Get().Named("dataset")
	var ds model.Datasets
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := load(ctx, src.ScatterPath, EmbeddedScatter, DecodeScatter)
		ds.Scatter = recs
		return err
	})
	g.Go(func() error {
		recs, err := load(ctx, src.RidershipPath, EmbeddedRidership, DecodeRidership)
		ds.Ridership = recs
		return err
	})
	g.Go(func() error {
		recs, err := load(ctx, src.AnnotationsPath, EmbeddedAnnotations, DecodeAnnotations)
		ds.Annotations = recs
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Datasets{}, err
	}

	if len(ds.Scatter) == 0 {
		return model.Datasets{}, fmt.Errorf("scatter: %w", ErrEmptyDataset)
	}
	if len(ds.Ridership) == 0 {
		return model.Datasets{}, fmt.Errorf("ridership: %w", ErrEmptyDataset)
	}
	log.Info(ctx, "datasets loaded",
		logger.Int("scatter", len(ds.Scatter)),
		logger.Int("ridership", len(ds.Ridership)),
		logger.Int("annotations", len(ds.Annotations)),
	)
	return ds, nil
}

// Embedded returns the datasets compiled into the binary.
func Embedded(ctx context.Context) (model.Datasets, error) {
	return Load(ctx, Source{})
}

func load[T any](ctx context.Context, path, fallback string, decode func(io.Reader, Format) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		f    io.ReadCloser
		err  error
		name = path
	)
	if path == "" {
		name = fallback
		f, err = embedded.Open(fallback)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	recs, err := decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return recs, nil
}
