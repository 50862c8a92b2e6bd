package application

import (
	"encoding/hex"
	"fmt"
	"strings"

	"vaultaudit/internal/domain"

	"github.com/ethereum/go-ethereum/common"
)

const wordHexLen = 2 * common.HashLength

// ExtractAddresses treats the first and the last 20 bytes of every 32-byte
// value as a candidate address and returns them together with the known
// contract addresses. Values of any other length are ignored. Nothing checks
// that a candidate is a real account.
func ExtractAddresses(values RawValueSet, known ...string) (*domain.AddressSet, error) {
	set := domain.NewAddressSet()
	for value := range values {
		for _, candidate := range wordCandidates(value) {
			set.Add(candidate)
		}
	}
	for _, address := range known {
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("invalid contract address %q", address)
		}
		set.Add(common.HexToAddress(address))
	}
	return set, nil
}

func wordCandidates(value string) []common.Address {
	raw := strings.TrimPrefix(value, "0x")
	if len(raw) != wordHexLen {
		return nil
	}
	word, err := hex.DecodeString(raw)
	if err != nil {
		return nil
	}
	return []common.Address{
		common.BytesToAddress(word[:common.AddressLength]),
		common.BytesToAddress(word[len(word)-common.AddressLength:]),
	}
}
