package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SchemaConstraint is the snapshot schema range this build understands.
// Snapshots produced for a newer major version are rejected rather than
// half-read.
const SchemaConstraint = ">= 1.0.0, < 2.0.0"

// Snapshot file names inside a snapshot directory.
const (
	manifestFile     = "manifest.yaml"
	vendorsFile      = "vendors.yaml"
	institutionsFile = "institutions.yaml"
	sanctionsFile    = "sanctions.yaml"
	reportsFile      = "reports.yaml"
)

// Snapshot loading errors.
var (
	ErrManifestMissing    = errors.New("snapshot manifest not found")
	ErrSchemaUnsupported  = errors.New("snapshot schema version not supported")
	ErrSchemaVersionEmpty = errors.New("snapshot manifest has no schema_version")
)

// Manifest describes a snapshot directory.
type Manifest struct {
	SchemaVersion string    `yaml:"schema_version"`
	GeneratedAt   time.Time `yaml:"generated_at"`
	Source        string    `yaml:"source"`
}

// Snapshot is one fully-loaded, immutable procurement-risk data set. The
// browser reads it by index only; nothing mutates it after Load returns.
type Snapshot struct {
	Manifest     Manifest
	Vendors      []Vendor
	Institutions []Institution
	Sanctions    []Sanction
	Reports      []Report
}

// Load reads a snapshot directory. The manifest is read first and its schema
// version checked against SchemaConstraint; the four record files are then
// decoded concurrently. A missing record file yields an empty slice, not an
// error, since partial snapshots are common during investigations.
func Load(ctx context.Context, dir string) (*Snapshot, error) {
	manifest, err := loadManifest(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Manifest: manifest}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	g.Go(func() error {
		return loadRecords(filepath.Join(dir, vendorsFile), &snap.Vendors)
	})
	g.Go(func() error {
		return loadRecords(filepath.Join(dir, institutionsFile), &snap.Institutions)
	})
	g.Go(func() error {
		return loadRecords(filepath.Join(dir, sanctionsFile), &snap.Sanctions)
	})
	g.Go(func() error {
		return loadRecords(filepath.Join(dir, reportsFile), &snap.Reports)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func loadManifest(path string) (Manifest, error) {
	var manifest Manifest

	raw, err := os.ReadFile(path) //nolint:gosec // Path is the user's snapshot directory.
	if err != nil {
		if os.IsNotExist(err) {
			return manifest, fmt.Errorf("%w: %s", ErrManifestMissing, path)
		}
		return manifest, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return manifest, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := checkSchema(manifest.SchemaVersion); err != nil {
		return manifest, err
	}
	return manifest, nil
}

// checkSchema validates a manifest schema version against SchemaConstraint.
func checkSchema(version string) error {
	if version == "" {
		return ErrSchemaVersionEmpty
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", version, err)
	}
	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrSchemaUnsupported, version, SchemaConstraint)
	}
	return nil
}

// loadRecords decodes one YAML record file into dest. Absent files leave dest
// empty.
func loadRecords[T any](path string, dest *[]T) error {
	raw, err := os.ReadFile(path) //nolint:gosec // Path is the user's snapshot directory.
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
