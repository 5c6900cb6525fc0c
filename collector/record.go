package collector

import "strconv"

// Sentinel values used in place of missing or failed data
const (
	NotAvailable = "N/A"
	NotFound     = "NOT_FOUND"
	Failed       = "ERROR"

	NotFoundMessage = "Validator not found in API"
)

// Score is the validator performance score as reported by the API
type Score float64

// MarshalCSV prints the score without a fixed precision, so 0 is written as "0"
func (s Score) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(s), 'f', -1, 64), nil
}

// Record is one report row. Field order defines the report column order.
type Record struct {
	Address                    string `csv:"address"`
	Index                      string `csv:"index"`
	Status                     string `csv:"status"`
	BalanceWei                 string `csv:"balance_wei"`
	BalanceETH                 string `csv:"balance_eth"`
	AttestationSuccessRate     string `csv:"attestation_success_rate"`
	ProposalSuccessRate        string `csv:"proposal_success_rate"`
	LastProposed               string `csv:"last_proposed"`
	PerformanceScore           Score  `csv:"performance_score"`
	TotalAttestationsSucceeded int64  `csv:"total_attestations_succeeded"`
	TotalAttestationsMissed    int64  `csv:"total_attestations_missed"`
	TotalBlocksProposed        int64  `csv:"total_blocks_proposed"`
	TotalBlocksMined           int64  `csv:"total_blocks_mined"`
	TotalBlocksMissed          int64  `csv:"total_blocks_missed"`
	Rank                       string `csv:"rank"`
	Error                      string `csv:"error"`
}

// Header lists the report columns in order
var Header = []string{
	"address",
	"index",
	"status",
	"balance_wei",
	"balance_eth",
	"attestation_success_rate",
	"proposal_success_rate",
	"last_proposed",
	"performance_score",
	"total_attestations_succeeded",
	"total_attestations_missed",
	"total_blocks_proposed",
	"total_blocks_mined",
	"total_blocks_missed",
	"rank",
	"error",
}

// HasError reports whether the lookup for this record did not produce validator data
func (r Record) HasError() bool {
	return r.Error != ""
}

func sentinelRecord(address, sentinel, reason string) Record {
	r := fromCandidate(address, nil)
	r.Index = sentinel
	r.Status = sentinel
	r.Error = reason
	return r
}
