package logos

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/civicmap/mapdata-cli/internal/model"
)

// Failure records one unresolved entity for the report file.
type Failure struct {
	Entity string
	Domain string
	Reason string
}

// Summary is the outcome of a batch run.
type Summary struct {
	Succeeded int
	Skipped   int
	Failures  []Failure
}

func (s *Summary) fail(entity, domain, reason string) {
	s.Failures = append(s.Failures, Failure{Entity: entity, Domain: domain, Reason: reason})
}

// Options configures a Resolver.
type Options struct {
	OutDir        string
	BrandfetchKey string
	Client        ClientOptions
}

// Resolver downloads one logo per row into OutDir, best effort: nothing is
// retried, existing files are never overwritten, and per-entity failures
// accumulate instead of aborting the batch.
type Resolver struct {
	client        *Client
	outDir        string
	brandfetchKey string

	brandfetchBase string
	clearbitBase   string
	duckduckgoBase string

	log *zap.Logger
}

// NewResolver builds a resolver with the default provider endpoints.
func NewResolver(opts Options) *Resolver {
	return &Resolver{
		client:         NewClient(opts.Client),
		outDir:         opts.OutDir,
		brandfetchKey:  opts.BrandfetchKey,
		brandfetchBase: defaultBrandfetchBase,
		clearbitBase:   defaultClearbitBase,
		duckduckgoBase: defaultDuckDuckGoBase,
		log:            zap.L(),
	}
}

// Run processes every row sequentially. The returned error covers fatal
// setup only (output directory); per-entity problems land in the summary.
func (r *Resolver) Run(ctx context.Context, rows []model.Row) (*Summary, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "create output dir %s", r.outDir)
	}

	sum := &Summary{}
	for i, row := range rows {
		entity := row.Entity
		if entity == "" {
			sum.fail("(empty)", row.Domain, "no entity name")
			continue
		}

		domain := NormDomain(row.Domain)
		if domain == "" {
			sum.fail(entity, row.Domain, "no domain provided")
			continue
		}

		base := DomainFilename(domain)
		if base == "" {
			base = Slugify(entity)
		}
		outPath := filepath.Join(r.outDir, base+".png")

		if _, err := os.Stat(outPath); err == nil {
			r.log.Info("logo exists, skipping",
				zap.Int("row", i+1),
				zap.String("entity", entity),
				zap.String("file", filepath.Base(outPath)),
			)
			sum.Skipped++
			continue
		}

		data, source, err := r.resolve(ctx, domain)
		if err != nil {
			r.log.Warn("logo unresolved",
				zap.Int("row", i+1),
				zap.String("entity", entity),
				zap.String("domain", domain),
				zap.Error(err),
			)
			sum.fail(entity, domain, "could not resolve logo: "+err.Error())
			continue
		}

		pngBytes, err := ToPNG(data)
		if err != nil {
			r.log.Warn("logo conversion failed",
				zap.Int("row", i+1),
				zap.String("entity", entity),
				zap.String("source", source),
				zap.Error(err),
			)
			sum.fail(entity, domain, "failed to convert to png: "+err.Error())
			continue
		}

		if err := os.WriteFile(outPath, pngBytes, 0o644); err != nil {
			sum.fail(entity, domain, "failed to save file: "+err.Error())
			continue
		}

		r.log.Info("logo downloaded",
			zap.Int("row", i+1),
			zap.String("entity", entity),
			zap.String("source", source),
			zap.String("file", filepath.Base(outPath)),
		)
		sum.Succeeded++
	}

	return sum, nil
}
