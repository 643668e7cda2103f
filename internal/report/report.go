package report

import (
	"fmt"
	"io"

	"github.com/quirksec/darkscan/internal/detect"
)

// Printer renders the scan report. Everything goes through one writer so the
// CLI can point it at stdout and tests can capture it.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) Printer { return Printer{w: w} }

// Analyzing announces the wallet under scan.
func (p Printer) Analyzing(address string) {
	fmt.Fprintf(p.w, "[•] Analyzing transactions for %s...\n", address)
}

// TransactionCount reports how much history the explorer returned.
func (p Printer) TransactionCount(n int) {
	fmt.Fprintf(p.w, "[✓] Found %d transactions. Checking contracts...\n", n)
}

// Findings renders either the all-clear line or one line per finding, in the
// order the detector produced them.
func (p Printer) Findings(fs []detect.Finding) {
	if len(fs) == 0 {
		fmt.Fprintln(p.w, "[✓] No suspicious contract calls found.")
		return
	}
	fmt.Fprintln(p.w, "\n[!] Suspicious contract interactions detected:")
	for _, f := range fs {
		fmt.Fprintf(p.w, "  - contract: %s | method: %s | age: %d days | tx: %s\n",
			f.Contract, f.Method, f.AgeDays, f.TxHash)
	}
}
