// Package data defines the procurement-risk record types procview browses
// and the snapshot loader that brings them into memory.
package data

import "time"

// RiskBand buckets a 0-10 risk score for display.
type RiskBand string

const (
	RiskLow      RiskBand = "low"
	RiskMedium   RiskBand = "medium"
	RiskHigh     RiskBand = "high"
	RiskCritical RiskBand = "critical"
)

// Risk score thresholds separating the bands.
const (
	riskMediumFloor   = 4.0
	riskHighFloor     = 7.0
	riskCriticalFloor = 9.0
)

// BandFor returns the risk band for a 0-10 score.
func BandFor(score float64) RiskBand {
	switch {
	case score >= riskCriticalFloor:
		return RiskCritical
	case score >= riskHighFloor:
		return RiskHigh
	case score >= riskMediumFloor:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Vendor is a supplier participating in public procurement.
type Vendor struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Country       string   `yaml:"country"`
	Sector        string   `yaml:"sector"`
	RiskScore     float64  `yaml:"risk_score"`
	ContractCount int      `yaml:"contract_count"`
	TotalAwarded  float64  `yaml:"total_awarded"`
	Currency      string   `yaml:"currency"`
	SanctionCount int      `yaml:"sanction_count"`
	Flags         []string `yaml:"flags,omitempty"`
}

// Institution is a contracting authority awarding public contracts.
type Institution struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Country       string  `yaml:"country"`
	Kind          string  `yaml:"kind"`
	AnnualBudget  float64 `yaml:"annual_budget"`
	ContractCount int     `yaml:"contract_count"`
	AvgRiskScore  float64 `yaml:"avg_risk_score"`
}

// Sanction is a listing of a vendor on a sanctions or debarment register.
type Sanction struct {
	ID         string    `yaml:"id"`
	VendorID   string    `yaml:"vendor_id"`
	VendorName string    `yaml:"vendor_name"`
	Authority  string    `yaml:"authority"`
	Program    string    `yaml:"program"`
	ListedOn   time.Time `yaml:"listed_on"`
	Status     string    `yaml:"status"`
	Reason     string    `yaml:"reason"`
}

// Finding is one observation inside an investigation report.
type Finding struct {
	Category string  `yaml:"category"`
	Detail   string  `yaml:"detail"`
	Weight   float64 `yaml:"weight"`
}

// Report is an investigation report over a vendor or institution.
type Report struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Subject   string    `yaml:"subject"`
	CreatedAt time.Time `yaml:"created_at"`
	Severity  string    `yaml:"severity"`
	Summary   string    `yaml:"summary"`
	Findings  []Finding `yaml:"findings,omitempty"`
}
