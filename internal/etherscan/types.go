package etherscan

import "strings"

// Transaction is one record of the account txlist endpoint. The explorer
// returns every numeric field as a decimal string; keep them verbatim and
// let callers decode what they need.
type Transaction struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	Input       string `json:"input"`
	IsError     string `json:"isError"`
}

// ContractInfo is one record of the getsourcecode endpoint. SourceCode is
// empty when the contract has no published source.
type ContractInfo struct {
	SourceCode      string `json:"SourceCode"`
	ABI             string `json:"ABI"`
	ContractName    string `json:"ContractName"`
	CompilerVersion string `json:"CompilerVersion"`
	LicenseType     string `json:"LicenseType"`
	Proxy           string `json:"Proxy"`
	LastUpdated     string `json:"LastUpdated"`
}

// Verified reports whether the contract has non-blank verified source.
func (c ContractInfo) Verified() bool {
	return strings.TrimSpace(c.SourceCode) != ""
}
