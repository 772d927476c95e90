package entity

// NetworkProfile holds the connection parameters of one deployment target.
// Empty fields are omitted so the rendered profile matches what the deploy tool expects
// (the in-process network has no URL, gas price or accounts at all).
type NetworkProfile struct {
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	GasPrice uint64   `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"` // wei
	Accounts []string `json:"accounts,omitempty" yaml:"accounts,omitempty"`
}

// HasEndpoint reports whether the profile can be reached over JSON-RPC.
func (p NetworkProfile) HasEndpoint() bool {
	return p.URL != ""
}

// Clone returns a deep copy of the profile.
func (p NetworkProfile) Clone() NetworkProfile {
	out := p
	if p.Accounts != nil {
		out.Accounts = append([]string(nil), p.Accounts...)
	}
	return out
}

// NetworkDefinition is the static metadata for a known deployment network.
// This structure is shared by the assembler and by the probing tools.
type NetworkDefinition struct {
	Identifier  string `json:"identifier" yaml:"identifier"` // key in the networks map, e.g. "bscMain"
	Name        string `json:"name" yaml:"name"`
	ChainID     uint64 `json:"chainId" yaml:"chainId"`
	URLTemplate string `json:"urlTemplate,omitempty" yaml:"urlTemplate,omitempty"`
	// URLKeyVar names the environment variable substituted into URLTemplate, if any.
	URLKeyVar     string `json:"urlKeyVar,omitempty" yaml:"urlKeyVar,omitempty"`
	GasPrice      uint64 `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	UsesAccounts  bool   `json:"usesAccounts" yaml:"usesAccounts"`
	NativeSymbol  string `json:"nativeSymbol" yaml:"nativeSymbol"`
	ExplorerKey   string `json:"explorerKey,omitempty" yaml:"explorerKey,omitempty"`
	BlockExplorer string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// ExplorerDefinition describes a block-explorer verification API.
type ExplorerDefinition struct {
	Key     string `json:"key" yaml:"key"` // e.g. "bscTestnet"
	Family  string `json:"family" yaml:"family"`
	APIURL  string `json:"apiUrl" yaml:"apiUrl"`
	EnvVar  string `json:"envVar" yaml:"envVar"`
	ChainID uint64 `json:"chainId" yaml:"chainId"`
}
