package domain

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// AddressSet holds unique 20-byte addresses. Comparison is on the raw bytes, so
// differently cased spellings of one address collapse into a single member.
type AddressSet struct {
	members map[common.Address]struct{}
}

func NewAddressSet() *AddressSet {
	return &AddressSet{members: make(map[common.Address]struct{})}
}

func (s *AddressSet) Add(address common.Address) {
	s.members[address] = struct{}{}
}

func (s *AddressSet) Len() int {
	return len(s.members)
}

// Sorted returns the checksummed members in ascending byte order.
func (s *AddressSet) Sorted() []string {
	addresses := make([]common.Address, 0, len(s.members))
	for address := range s.members {
		addresses = append(addresses, address)
	}
	sort.Slice(addresses, func(a, b int) bool {
		return bytes.Compare(addresses[a][:], addresses[b][:]) < 0
	})
	out := make([]string, len(addresses))
	for i, address := range addresses {
		out[i] = address.Hex()
	}
	return out
}
