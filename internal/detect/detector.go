package detect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quirksec/darkscan/internal/config"
	"github.com/quirksec/darkscan/internal/etherscan"
	"github.com/quirksec/darkscan/internal/logging"
)

// SourceFetcher is the one lookup the detector needs. *etherscan.Client
// satisfies it; tests inject stubs.
type SourceFetcher interface {
	ContractSource(ctx context.Context, address string) (etherscan.ContractInfo, error)
}

// Options configure one detection run.
type Options struct {
	MaxAgeDays int
	OnError    string           // config.OnErrorAbort (default) or config.OnErrorSkip
	Now        func() time.Time // test seam; defaults to time.Now
}

// Finding is one flagged contract interaction.
type Finding struct {
	Contract string // recipient contract address
	Method   string // 4-byte selector with 0x prefix
	AgeDays  int    // whole days since the contract's recorded date
	TxHash   string
}

// Detector walks a wallet's transactions and flags calls into contracts that
// are both unverified and recently created. It owns a per-run cache of
// contract lookups so repeated recipients cost a single API call.
type Detector struct {
	src   SourceFetcher
	opts  Options
	cache map[string]etherscan.ContractInfo
}

func New(src SourceFetcher, opts Options) *Detector {
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = config.DefaultMaxAgeDays
	}
	opts.OnError = config.NormalizeOnError(opts.OnError)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Detector{src: src, opts: opts, cache: make(map[string]etherscan.ContractInfo)}
}

// dateLayout is the explorer's date-only creation/update stamp. Day
// granularity makes computed ages inherently ±1 day imprecise.
const dateLayout = "2006-01-02"

// Run classifies transactions in order and returns findings in the same
// order. Under the default abort policy a failed lookup or malformed record
// fails the whole run; under skip it drops that candidate with a warning and
// keeps going.
func (d *Detector) Run(ctx context.Context, txs []etherscan.Transaction) ([]Finding, error) {
	now := d.opts.Now().UTC()
	var findings []Finding
	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !isContractCall(tx) {
			continue
		}
		info, err := d.contractInfo(ctx, tx.To)
		if err != nil {
			if d.opts.OnError == config.OnErrorSkip {
				logging.Logger().Warn("contract lookup failed",
					"contract", tx.To, "tx", tx.Hash, "error", err)
				continue
			}
			return nil, fmt.Errorf("contract %s (tx %s): %w", tx.To, tx.Hash, err)
		}
		if info.Verified() {
			continue
		}
		created, err := time.Parse(dateLayout, strings.TrimSpace(info.LastUpdated))
		if err != nil {
			if d.opts.OnError == config.OnErrorSkip {
				logging.Logger().Warn("malformed contract date",
					"contract", tx.To, "date", info.LastUpdated, "error", err)
				continue
			}
			return nil, fmt.Errorf("contract %s: malformed date %q: %w", tx.To, info.LastUpdated, err)
		}
		age := int(now.Sub(created) / (24 * time.Hour))
		if age <= d.opts.MaxAgeDays {
			findings = append(findings, Finding{
				Contract: tx.To,
				Method:   methodSelector(tx.Input),
				AgeDays:  age,
				TxHash:   tx.Hash,
			})
		}
	}
	return findings, nil
}

// isContractCall filters out plain value transfers: no recipient, no input
// payload, or the bare "0x" marker.
func isContractCall(tx etherscan.Transaction) bool {
	return tx.To != "" && tx.Input != "" && tx.Input != "0x"
}

// methodSelector is the leading 4 bytes of call data: "0x" plus 8 hex chars.
func methodSelector(input string) string {
	if len(input) > 10 {
		return input[:10]
	}
	return input
}

func (d *Detector) contractInfo(ctx context.Context, address string) (etherscan.ContractInfo, error) {
	key := strings.ToLower(address)
	if info, ok := d.cache[key]; ok {
		return info, nil
	}
	info, err := d.src.ContractSource(ctx, address)
	if err != nil {
		return etherscan.ContractInfo{}, err
	}
	d.cache[key] = info
	return info, nil
}
