// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/buildprofile/buildprofile/internal/application/dto"
	"github.com/buildprofile/buildprofile/internal/application/ports"
	"github.com/buildprofile/buildprofile/internal/domain/entities"
	"github.com/buildprofile/buildprofile/internal/domain/services"
	"github.com/buildprofile/buildprofile/internal/domain/values"
)

// ReaderOptions configures a ProfileReader.
type ReaderOptions struct {
	Logger *slog.Logger

	// FailFast stops validation at the first violation.
	FailFast bool
}

// ProfileReader resolves build profiles of one project.
// The document is loaded lazily on first use and cached for the life of
// the reader; resolution itself holds no locks.
type ProfileReader struct {
	loader    *CachingLoader
	validator ports.SchemaValidator
	resolver  *services.InheritanceResolver
	merger    *services.ProfileMerger
	compiler  *services.ProfileCompiler
	failFast  bool
	logger    *slog.Logger
}

// NewProfileReader creates a reader for the project at projectDir.
func NewProfileReader(
	projectDir string,
	loader ports.DocumentLoader,
	validator ports.SchemaValidator,
	opts ReaderOptions,
) *ProfileReader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileReader{
		loader:    NewCachingLoader(loader, projectDir),
		validator: validator,
		resolver:  services.NewInheritanceResolver(),
		merger:    services.NewProfileMerger(),
		compiler:  services.NewProfileCompiler(),
		failFast:  opts.FailFast,
		logger:    logger,
	}
}

// ReadBuildProfile returns the named profile fully resolved for platform.
func (r *ProfileReader) ReadBuildProfile(
	ctx context.Context,
	name string,
	platform values.Platform,
) (*entities.ResolvedProfile, error) {
	doc, err := r.loader.Document(ctx)
	if err != nil {
		return nil, err
	}
	return r.resolve(doc, name, platform)
}

// GetBuildProfileNames returns every declared profile name, sorted.
func (r *ProfileReader) GetBuildProfileNames(ctx context.Context) ([]string, error) {
	doc, err := r.loader.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ProfileNames(), nil
}

// ResolveAll resolves one profile for several platforms in parallel.
// Results follow the order of platforms. The first failure cancels the
// remaining work and is returned.
func (r *ProfileReader) ResolveAll(
	ctx context.Context,
	name string,
	platforms []values.Platform,
) ([]*entities.ResolvedProfile, error) {
	doc, err := r.loader.Document(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*entities.ResolvedProfile, len(platforms))
	g, gctx := errgroup.WithContext(ctx)
	for i, platform := range platforms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resolved, err := r.resolve(doc, name, platform)
			if err != nil {
				return err
			}
			results[i] = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ValidateAll resolves every profile for every platform and collects the
// failures instead of stopping at the first one. Only loading the
// document can fail the call itself. Inheritance errors do not depend on
// the platform and are reported once per profile with an empty Platform.
// ConfigPath is left for the caller to fill in.
func (r *ProfileReader) ValidateAll(ctx context.Context) (*dto.ValidationReport, error) {
	doc, err := r.loader.Document(ctx)
	if err != nil {
		return nil, err
	}

	platforms := values.AllPlatforms()
	report := &dto.ValidationReport{}
	for _, name := range doc.ProfileNames() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Checked += len(platforms)

		chain, err := r.resolver.ResolveChain(doc, name)
		if err != nil {
			report.Problems = append(report.Problems, dto.ProfileProblem{
				Profile: name,
				Err:     err,
			})
			continue
		}

		for _, platform := range platforms {
			if _, err := r.build(chain, name, platform); err != nil {
				report.Problems = append(report.Problems, dto.ProfileProblem{
					Profile:  name,
					Platform: platform,
					Err:      err,
				})
			}
		}
	}

	r.logger.Debug("validated build profiles",
		"checked", report.Checked,
		"problems", len(report.Problems))
	return report, nil
}

// FilterProfiles returns the names of profiles whose resolution for
// platform matches filter. Profiles that fail to resolve are an error.
func (r *ProfileReader) FilterProfiles(
	ctx context.Context,
	filter *services.ProfileFilter,
	platform values.Platform,
) ([]string, error) {
	names, err := r.GetBuildProfileNames(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return names, nil
	}

	var matched []string
	var errs []error
	for _, name := range names {
		resolved, err := r.ReadBuildProfile(ctx, name, platform)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ok, err := filter.Matches(resolved)
		if err != nil {
			errs = append(errs, fmt.Errorf("filtering build profile %q: %w", name, err))
			continue
		}
		if ok {
			matched = append(matched, name)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return matched, nil
}

// resolve runs chain resolution, merge, validation and decode.
func (r *ProfileReader) resolve(
	doc *entities.ConfigDocument,
	name string,
	platform values.Platform,
) (*entities.ResolvedProfile, error) {
	chain, err := r.resolver.ResolveChain(doc, name)
	if err != nil {
		return nil, err
	}
	return r.build(chain, name, platform)
}

// build merges a resolved chain for platform, validates and decodes it.
func (r *ProfileReader) build(
	chain []*entities.ProfileDefinition,
	name string,
	platform values.Platform,
) (*entities.ResolvedProfile, error) {
	candidate := r.merger.Merge(chain, platform)

	if err := r.check(candidate, name, platform); err != nil {
		return nil, err
	}

	resolved, err := r.compiler.Compile(name, platform, candidate)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("resolved build profile",
		"profile", name,
		"platform", platform,
		"chain", len(chain))
	return resolved, nil
}

func (r *ProfileReader) check(candidate map[string]any, name string, platform values.Platform) error {
	if !r.failFast {
		return r.validator.Check(candidate, name, platform)
	}
	violations := r.validator.Validate(candidate, name, platform)
	if len(violations) == 0 {
		return nil
	}
	return violations[0]
}
