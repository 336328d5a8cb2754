package data_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openspend/procview/internal/data"
)

func writeSnapshotFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

const validManifest = `schema_version: "1.2.0"
generated_at: 2026-01-15T00:00:00Z
source: test
`

func TestLoad_FullSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "manifest.yaml", validManifest)
	writeSnapshotFile(t, dir, "vendors.yaml", `
- id: 01JVND0R0001
  name: Via Construct SRL
  country: RO
  sector: construction
  risk_score: 8.7
  contract_count: 41
  total_awarded: 1250000
  currency: EUR
  flags: [single-bidder awards]
- id: 01JVND0R0002
  name: Delta IT SRL
  country: PL
  sector: IT services
  risk_score: 2.1
  contract_count: 5
  total_awarded: 80000
  currency: EUR
`)
	writeSnapshotFile(t, dir, "sanctions.yaml", `
- id: 01JSANC00001
  vendor_id: 01JVND0R0001
  vendor_name: Via Construct SRL
  authority: EU Council
  program: procurement ban
  listed_on: 2025-06-01T00:00:00Z
  status: active
  reason: Irregularities in award procedure
`)

	snap, err := data.Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "1.2.0", snap.Manifest.SchemaVersion)
	require.Len(t, snap.Vendors, 2)
	assert.Equal(t, "Via Construct SRL", snap.Vendors[0].Name)
	assert.InDelta(t, 8.7, snap.Vendors[0].RiskScore, 0.001)
	require.Len(t, snap.Sanctions, 1)
	assert.Equal(t, "01JVND0R0001", snap.Sanctions[0].VendorID)
	assert.Empty(t, snap.Institutions, "absent file loads as empty, not error")
	assert.Empty(t, snap.Reports)
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := data.Load(context.Background(), t.TempDir())

	assert.ErrorIs(t, err, data.ErrManifestMissing)
}

func TestLoad_SchemaVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "supported", version: "1.0.0", wantErr: nil},
		{name: "supported minor bump", version: "1.9.3", wantErr: nil},
		{name: "future major", version: "2.0.0", wantErr: data.ErrSchemaUnsupported},
		{name: "ancient", version: "0.4.0", wantErr: data.ErrSchemaUnsupported},
		{name: "empty", version: "", wantErr: data.ErrSchemaVersionEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeSnapshotFile(t, dir, "manifest.yaml", "schema_version: \""+tt.version+"\"\n")

			_, err := data.Load(context.Background(), dir)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MalformedRecords(t *testing.T) {
	dir := t.TempDir()
	writeSnapshotFile(t, dir, "manifest.yaml", validManifest)
	writeSnapshotFile(t, dir, "vendors.yaml", "not: [valid")

	_, err := data.Load(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vendors.yaml")
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, data.RiskLow, data.BandFor(0))
	assert.Equal(t, data.RiskLow, data.BandFor(3.9))
	assert.Equal(t, data.RiskMedium, data.BandFor(4.0))
	assert.Equal(t, data.RiskHigh, data.BandFor(7.5))
	assert.Equal(t, data.RiskCritical, data.BandFor(9.0))
	assert.Equal(t, data.RiskCritical, data.BandFor(10))
}

func TestSampleSnapshot_Deterministic(t *testing.T) {
	a := data.SampleSnapshot(500)
	b := data.SampleSnapshot(500)

	require.Len(t, a.Vendors, 500)
	assert.Equal(t, a.Vendors, b.Vendors, "sample data must be reproducible")
	assert.Equal(t, a.Sanctions, b.Sanctions)
	assert.NotEmpty(t, a.Institutions)
	assert.NotEmpty(t, a.Reports)

	seen := make(map[string]struct{})
	for _, v := range a.Vendors {
		_, dup := seen[v.ID]
		assert.False(t, dup, "duplicate vendor ID %s", v.ID)
		seen[v.ID] = struct{}{}
	}
}

func TestSampleSnapshot_Empty(t *testing.T) {
	snap := data.SampleSnapshot(0)

	assert.Empty(t, snap.Vendors)
	assert.Empty(t, snap.Sanctions)
	assert.Empty(t, snap.Reports)
}
