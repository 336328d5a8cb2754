package data

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// sampleSeed fixes the generator so sample snapshots are reproducible across
// runs; browser behavior can then be discussed against stable record IDs.
const sampleSeed = 1138

var (
	sampleCountries = []string{"RO", "PL", "UA", "HU", "BG", "CZ", "SK", "MD"}
	sampleSectors   = []string{
		"construction", "road maintenance", "medical supplies", "IT services",
		"energy", "waste management", "security services", "consultancy",
	}
	sampleAuthorities = []string{"OFAC", "EU Council", "World Bank", "EBRD", "National Integrity Agency"}
	samplePrograms    = []string{"debarment", "asset freeze", "procurement ban", "cross-debarment"}
	sampleFlagPool    = []string{
		"single-bidder awards", "shell ownership", "price anomalies",
		"politically exposed owner", "late disclosures", "split contracts",
	}
	sampleCategories = []string{
		"ownership", "bidding pattern", "pricing", "conflict of interest", "delivery",
	}
)

// sampleEpoch anchors generated timestamps and ULIDs.
var sampleEpoch = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

// SampleSnapshot generates a deterministic in-memory snapshot with n vendors
// and proportionally sized institution, sanction, and report sets. It lets
// the browser run, and the virtualization paths be exercised at scale,
// without a snapshot on disk.
func SampleSnapshot(n int) *Snapshot {
	if n < 0 {
		n = 0
	}
	rng := rand.New(rand.NewSource(sampleSeed)) //nolint:gosec // Deterministic sample data, not crypto.
	entropy := ulid.Monotonic(rng, 0)
	newID := func() string {
		return ulid.MustNew(ulid.Timestamp(sampleEpoch), entropy).String()
	}

	snap := &Snapshot{
		Manifest: Manifest{
			SchemaVersion: "1.0.0",
			GeneratedAt:   sampleEpoch,
			Source:        "sample",
		},
	}

	snap.Vendors = make([]Vendor, n)
	for i := range snap.Vendors {
		score := rng.Float64() * 10
		vendor := Vendor{
			ID:            newID(),
			Name:          fmt.Sprintf("%s %s SRL", sampleSectors[rng.Intn(len(sampleSectors))], sampleNames[rng.Intn(len(sampleNames))]),
			Country:       sampleCountries[rng.Intn(len(sampleCountries))],
			Sector:        sampleSectors[rng.Intn(len(sampleSectors))],
			RiskScore:     float64(int(score*10)) / 10,
			ContractCount: 1 + rng.Intn(400),
			TotalAwarded:  float64(10_000 + rng.Intn(50_000_000)),
			Currency:      "EUR",
		}
		for _, flag := range sampleFlagPool {
			if rng.Float64() < score/25 {
				vendor.Flags = append(vendor.Flags, flag)
			}
		}
		snap.Vendors[i] = vendor
	}

	for i := 0; i < n/10+1; i++ {
		snap.Institutions = append(snap.Institutions, Institution{
			ID:            newID(),
			Name:          fmt.Sprintf("City Hall Sector %d", i+1),
			Country:       sampleCountries[rng.Intn(len(sampleCountries))],
			Kind:          []string{"municipality", "ministry", "agency", "state company"}[rng.Intn(4)],
			AnnualBudget:  float64(1_000_000 + rng.Intn(900_000_000)),
			ContractCount: 10 + rng.Intn(2_000),
			AvgRiskScore:  float64(int(rng.Float64()*100)) / 10,
		})
	}

	for _, vendor := range snap.Vendors {
		if vendor.RiskScore < 8.5 || rng.Float64() < 0.5 {
			continue
		}
		listed := sampleEpoch.AddDate(0, -rng.Intn(48), 0)
		snap.Sanctions = append(snap.Sanctions, Sanction{
			ID:         newID(),
			VendorID:   vendor.ID,
			VendorName: vendor.Name,
			Authority:  sampleAuthorities[rng.Intn(len(sampleAuthorities))],
			Program:    samplePrograms[rng.Intn(len(samplePrograms))],
			ListedOn:   listed,
			Status:     []string{"active", "active", "expired"}[rng.Intn(3)],
			Reason:     "Irregularities in award procedure",
		})
	}
	for i := range snap.Vendors {
		if snap.Vendors[i].RiskScore >= 8.5 {
			snap.Vendors[i].SanctionCount = 1
		}
	}

	for i := 0; n > 0 && i < n/8+1; i++ {
		vendor := snap.Vendors[rng.Intn(n)]
		report := Report{
			ID:        newID(),
			Title:     fmt.Sprintf("Award pattern review #%d", i+1),
			Subject:   vendor.Name,
			CreatedAt: sampleEpoch.AddDate(0, 0, -rng.Intn(365)),
			Severity:  []string{"info", "warning", "critical"}[rng.Intn(3)],
			Summary:   "Automated screening of award history against risk indicators.",
		}
		for f := 0; f < 1+rng.Intn(4); f++ {
			report.Findings = append(report.Findings, Finding{
				Category: sampleCategories[rng.Intn(len(sampleCategories))],
				Detail:   fmt.Sprintf("Indicator fired on %d of %d awards", 1+rng.Intn(20), vendor.ContractCount),
				Weight:   float64(int(rng.Float64()*100)) / 100,
			})
		}
		snap.Reports = append(snap.Reports, report)
	}

	return snap
}

var sampleNames = []string{
	"Construct", "Via", "Euro", "Prima", "Delta", "Nova", "Trans", "Inter",
	"Global", "Tehno", "Urban", "Terra",
}
