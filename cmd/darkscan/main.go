package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/quirksec/darkscan/internal/config"
	"github.com/quirksec/darkscan/internal/detect"
	"github.com/quirksec/darkscan/internal/etherscan"
	"github.com/quirksec/darkscan/internal/logging"
	"github.com/quirksec/darkscan/internal/report"
)

// explorer is the slice of the API client the scan needs.
type explorer interface {
	AccountTransactions(ctx context.Context, address string) ([]etherscan.Transaction, error)
	ContractSource(ctx context.Context, address string) (etherscan.ContractInfo, error)
}

var (
	// version is set via -ldflags "-X main.version=..."
	version = "dev"
	// exit is aliased to os.Exit to allow overriding in tests.
	exit = os.Exit
	// stdout is swappable so tests can capture the report.
	stdout io.Writer = os.Stdout
	// newClient lets tests inject a stub explorer client.
	newClient func(baseURL, apiKey string, timeout time.Duration) (explorer, error)
)

func defaultNewClient(baseURL, apiKey string, timeout time.Duration) (explorer, error) {
	return etherscan.New(baseURL, apiKey, &http.Client{Timeout: timeout})
}

func wireDefaults() { newClient = defaultNewClient }

func init() { wireDefaults() }

// printUsage prints a detailed CLI help with env mappings and examples.
func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "\nUsage:\n  %s [flags] <address> [api_key]\n\n", os.Args[0])
	fmt.Fprintln(w, "Scans a wallet's transaction history and flags calls into contracts that")
	fmt.Fprintln(w, "are both unverified and recently created.")
	fmt.Fprintln(w, "\nFlags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "\nEnvironment variables (defaults):")
	fmt.Fprintln(w, "  ETHERSCAN_BASE_URL Explorer API base URL (default https://api.etherscan.io/api)")
	fmt.Fprintln(w, "  ETHERSCAN_API_KEY  API key, used when the api_key argument is omitted")
	fmt.Fprintln(w, "  MAX_AGE_DAYS       Age threshold in days (default 7)")
	fmt.Fprintln(w, "  HTTP_TIMEOUT       Whole-run timeout (default 30s)")
	fmt.Fprintln(w, "  ON_ERROR           Lookup failure policy: abort | skip (default abort)")
	fmt.Fprintln(w, "  DARKSCAN_LOG_LEVEL debug | info | warn | error (default info)")
	fmt.Fprintln(w, "\nExamples:")
	fmt.Fprintln(w, "  Scan a wallet with the default 7-day threshold:")
	fmt.Fprintln(w, "    darkscan 0xabc... MYAPIKEY")
	fmt.Fprintln(w, "  Flag contracts younger than a month, skipping bad records:")
	fmt.Fprintln(w, "    darkscan --age 30 --on-error skip 0xabc... MYAPIKEY")
}

func main() {
	// Load centralized defaults from env.
	defaults := config.Load()
	var (
		ageDays     int
		baseURL     string
		onError     string
		timeout     time.Duration
		cfgPath     string
		showVersion bool
	)

	flag.Usage = printUsage
	flag.IntVar(&ageDays, "age", defaults.MaxAgeDays, "Max contract age in days to flag as suspicious (MAX_AGE_DAYS)")
	flag.StringVar(&baseURL, "base-url", defaults.BaseURL, "Explorer API base URL (ETHERSCAN_BASE_URL)")
	flag.StringVar(&onError, "on-error", defaults.OnError, "Lookup failure policy: abort | skip (ON_ERROR)")
	flag.DurationVar(&timeout, "timeout", defaults.Timeout, "Whole-run timeout (HTTP_TIMEOUT)")
	flag.StringVar(&cfgPath, "config", "", "Optional YAML settings file")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Fprintln(stdout, version)
		return
	}

	address := flag.Arg(0)
	apiKey := flag.Arg(1)
	if apiKey == "" {
		apiKey = defaults.APIKey
	}

	// The settings file ranks below flags and env: it only fills values
	// neither of those supplied.
	if cfgPath != "" {
		st, err := config.LoadFile(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			exit(2)
			return
		}
		seen := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { seen[f.Name] = true })
		if apiKey == "" {
			apiKey = st.Etherscan.APIKey
		}
		if !seen["base-url"] && os.Getenv("ETHERSCAN_BASE_URL") == "" && st.Etherscan.BaseURL != "" {
			baseURL = st.Etherscan.BaseURL
		}
		if !seen["age"] && os.Getenv("MAX_AGE_DAYS") == "" && st.Scan.MaxAgeDays > 0 {
			ageDays = st.Scan.MaxAgeDays
		}
		if !seen["on-error"] && os.Getenv("ON_ERROR") == "" && st.Scan.OnError != "" {
			onError = st.Scan.OnError
		}
	}

	if address == "" {
		fmt.Fprintln(os.Stderr, "missing address argument (0x...); see --help")
		exit(2)
		return
	}
	if !common.IsHexAddress(address) {
		fmt.Fprintln(os.Stderr, "invalid address; expected 0x-prefixed 40 hex chars")
		exit(2)
		return
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing api_key argument (or ETHERSCAN_API_KEY); see --help")
		exit(2)
		return
	}
	if ageDays <= 0 {
		fmt.Fprintln(os.Stderr, "--age must be > 0")
		exit(2)
		return
	}
	onError = config.NormalizeOnError(onError)

	logging.Logger().Debug("configured",
		"base_url", baseURL,
		"api_key", config.RedactAPIKey(apiKey),
		"age_days", ageDays,
		"on_error", onError,
		"timeout", timeout.String(),
	)

	client, err := newClient(baseURL, apiKey, timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		exit(1)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := report.New(stdout)
	out.Analyzing(common.HexToAddress(address).Hex())

	txs, err := client.AccountTransactions(ctx, address)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch error: %v\n", err)
		exit(1)
		return
	}
	out.TransactionCount(len(txs))

	det := detect.New(client, detect.Options{MaxAgeDays: ageDays, OnError: onError})
	findings, err := det.Run(ctx, txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
		exit(1)
		return
	}
	out.Findings(findings)
}
