package collector

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/screwyprof/validator-stats/pkg/dashtec"
)

// weiDecimals is the exponent between wei and ETH
const weiDecimals = 18

// ethPrecision is the number of fractional digits kept in balance_eth
const ethPrecision = 4

// textField maps an optional candidate field accepting a JSON string or number
type textField struct {
	key      string
	fallback string
	set      func(*Record, string)
}

// countField maps an optional candidate field accepting an integral JSON number, default 0
type countField struct {
	key string
	set func(*Record, int64)
}

var textFields = []textField{
	{key: "index", fallback: NotAvailable, set: func(r *Record, v string) { r.Index = v }},
	{key: "status", fallback: NotAvailable, set: func(r *Record, v string) { r.Status = v }},
	{key: "balance", fallback: "0", set: func(r *Record, v string) { r.BalanceWei = v }},
	{key: "attestationSuccess", fallback: NotAvailable, set: func(r *Record, v string) { r.AttestationSuccessRate = v }},
	{key: "proposalSuccess", fallback: NotAvailable, set: func(r *Record, v string) { r.ProposalSuccessRate = v }},
	{key: "lastProposed", fallback: NotAvailable, set: func(r *Record, v string) { r.LastProposed = v }},
	{key: "rank", fallback: NotAvailable, set: func(r *Record, v string) { r.Rank = v }},
}

var countFields = []countField{
	{key: "totalAttestationsSucceeded", set: func(r *Record, v int64) { r.TotalAttestationsSucceeded = v }},
	{key: "totalAttestationsMissed", set: func(r *Record, v int64) { r.TotalAttestationsMissed = v }},
	{key: "totalBlocksProposed", set: func(r *Record, v int64) { r.TotalBlocksProposed = v }},
	{key: "totalBlocksMined", set: func(r *Record, v int64) { r.TotalBlocksMined = v }},
	{key: "totalBlocksMissed", set: func(r *Record, v int64) { r.TotalBlocksMissed = v }},
}

const scoreField = "performanceScore"

// Normalize converts the outcome of one lookup into a report record.
// It never fails: a fetch error becomes an ERROR record, an empty result a NOT_FOUND
// record, and every missing or malformed field falls back to its default.
func Normalize(address string, result dashtec.SearchResult, fetchErr error) Record {
	if fetchErr != nil {
		reason := fetchErr.Error()
		if reason == "" {
			reason = "unknown error"
		}
		return sentinelRecord(address, Failed, reason)
	}

	if len(result.Validators) == 0 {
		return sentinelRecord(address, NotFound, NotFoundMessage)
	}

	// first match in response order, no re-ranking
	return fromCandidate(address, result.Validators[0])
}

func fromCandidate(address string, c dashtec.Candidate) Record {
	r := Record{Address: address}

	for _, f := range textFields {
		v, ok := textValue(c[f.key])
		if !ok {
			v = f.fallback
		}
		f.set(&r, v)
	}

	for _, f := range countFields {
		v, _ := countValue(c[f.key])
		f.set(&r, v)
	}

	score, _ := scoreValue(c[scoreField])
	r.PerformanceScore = Score(score)

	r.BalanceETH = WeiToETH(r.BalanceWei)
	return r
}

// WeiToETH converts a base-10 wei amount to ETH rounded to 4 fractional digits.
// Anything that does not parse as a number yields "0".
func WeiToETH(wei string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(wei))
	if err != nil {
		return "0"
	}
	return d.Shift(-weiDecimals).Round(ethPrecision).String()
}

func textValue(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}

func countValue(v any) (int64, bool) {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		return integral(v)
	default:
		return 0, false
	}
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func scoreValue(v any) (float64, bool) {
	switch v := v.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
