package streaming

import (
	"encoding/json"
	"errors"
)

type MessageType string

const (
	MessageTypeEvent       MessageType = "event"
	MessageTypePermissions MessageType = "permissions"
)

type Message struct {
	Type        MessageType `json:"type"`
	ChainID     uint64      `json:"chain_id"`
	Vault       string      `json:"vault"`
	Emitter     string      `json:"emitter,omitempty"`
	BlockNumber uint64      `json:"block_number,omitempty"`
	TxHash      string      `json:"tx_hash,omitempty"`
	LogIndex    uint64      `json:"log_index,omitempty"`
	Topics      []string    `json:"topics,omitempty"`
	Data        string      `json:"data,omitempty"`
	Addresses   []string    `json:"addresses,omitempty"`
}

func Encode(msg Message) ([]byte, error) {
	if msg.Type == "" {
		return nil, errors.New("message type is required")
	}
	if msg.ChainID == 0 {
		return nil, errors.New("chain_id is required")
	}
	if msg.Vault == "" {
		return nil, errors.New("vault is required")
	}
	return json.Marshal(msg)
}
