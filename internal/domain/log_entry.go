package domain

// LogEntry represents a contract log returned by the chain.
type LogEntry struct {
	Emitter     string   `json:"emitter"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber uint64   `json:"-"`
	TxHash      string   `json:"-"`
	LogIndex    uint64   `json:"-"`
}
