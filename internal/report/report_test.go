package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quirksec/darkscan/internal/detect"
)

func TestAnalyzingAndTransactionCount(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Analyzing("0xabc")
	p.TransactionCount(42)
	out := buf.String()
	if !strings.Contains(out, "[•] Analyzing transactions for 0xabc...") {
		t.Fatalf("missing analyzing line: %q", out)
	}
	if !strings.Contains(out, "[✓] Found 42 transactions.") {
		t.Fatalf("missing count line: %q", out)
	}
}

func TestFindingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Findings(nil)
	if !strings.Contains(buf.String(), "No suspicious contract calls found") {
		t.Fatalf("missing all-clear line: %q", buf.String())
	}
}

func TestFindingsLines(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Findings([]detect.Finding{
		{Contract: "0xAAA", Method: "0xa9059cbb", AgeDays: 5, TxHash: "0xh1"},
		{Contract: "0xBBB", Method: "0xdeadbeef", AgeDays: 2, TxHash: "0xh2"},
	})
	out := buf.String()
	if !strings.Contains(out, "[!] Suspicious contract interactions detected:") {
		t.Fatalf("missing header: %q", out)
	}
	first := strings.Index(out, "contract: 0xAAA | method: 0xa9059cbb | age: 5 days | tx: 0xh1")
	second := strings.Index(out, "contract: 0xBBB | method: 0xdeadbeef | age: 2 days | tx: 0xh2")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("finding lines missing or out of order: %q", out)
	}
}
