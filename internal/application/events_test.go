package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vaultaudit/internal/deployments"
	"vaultaudit/internal/domain"
)

const (
	vaultAddress = "0xBEEF69Ac7870777598A04B2bd4771c71212E6aBc"
	proxyAdmin   = "0xed792a3fDEB9044C70c951260AaAe974Fb3dB38F"
)

func eventGroup() deployments.VaultGroup {
	return deployments.VaultGroup{
		Label: "steakhouse",
		Contracts: []domain.ContractDeployment{
			{Name: "Vault", Address: vaultAddress, CreationBlock: 100},
			{Name: "ProxyAdmin", Address: proxyAdmin, CreationBlock: 90},
		},
	}
}

func TestEventsExporter_Export(t *testing.T) {
	source := &fakeChain{
		chainID: 1,
		head:    130,
		logs: map[string][]domain.LogEntry{
			strings.ToLower(vaultAddress): {
				{Emitter: strings.ToLower(vaultAddress), BlockNumber: 101, Topics: []string{paddedWord}, Data: "0xabcd"},
			},
			strings.ToLower(proxyAdmin): {
				{Emitter: strings.ToLower(proxyAdmin), BlockNumber: 95, Topics: []string{paddedWord}, Data: "0x"},
				{Emitter: strings.ToLower(proxyAdmin), BlockNumber: 131, Topics: []string{paddedWord}, Data: "0x"},
			},
		},
	}
	store := &memoryStore{}
	publisher := &recordingPublisher{}
	exporter, err := NewEventsExporter(source, newCollector(t, source, 50), store, publisher, EventsConfig{ChainID: 1, DataPrefixWords: 2})
	if err != nil {
		t.Fatal(err)
	}

	reports, err := exporter.Export(context.Background(), []deployments.VaultGroup{eventGroup()})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(reports) != 1 || reports[0].Events != 2 {
		t.Fatalf("unexpected reports %+v", reports)
	}

	name := "events_0xbeef69ac7870777598a04b2bd4771c71212e6abc.json"
	events, ok := store.docs[name].([]domain.LogEntry)
	if !ok {
		t.Fatalf("expected %s to be written, got %v", name, store.docs)
	}
	if events[0].Emitter != vaultAddress || events[1].Emitter != proxyAdmin {
		t.Errorf("expected configured emitters in contract order, got %s, %s", events[0].Emitter, events[1].Emitter)
	}
	if want := "0x" + strings.Repeat("0", 128) + "abcd"; events[0].Data != want {
		t.Errorf("data = %s, want %s", events[0].Data, want)
	}
	if want := "0x" + strings.Repeat("0", 128); events[1].Data != want {
		t.Errorf("empty data = %s, want %s", events[1].Data, want)
	}
	if len(publisher.events["1/"+vaultAddress]) != 2 {
		t.Errorf("expected events to be published, got %v", publisher.events)
	}
	for _, call := range source.calls {
		if call.toBlock > 130 {
			t.Errorf("fetched past head: %+v", call)
		}
	}
}

func TestEventsExporter_NoLogsWritesEmptyList(t *testing.T) {
	source := &fakeChain{chainID: 1, head: 130}
	store := &memoryStore{}
	exporter, err := NewEventsExporter(source, newCollector(t, source, 50), store, nil, EventsConfig{ChainID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := exporter.Export(context.Background(), []deployments.VaultGroup{eventGroup()}); err != nil {
		t.Fatal(err)
	}
	events := store.docs["events_0xbeef69ac7870777598a04b2bd4771c71212e6abc.json"].([]domain.LogEntry)
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", events)
	}
}

func TestEventsExporter_ChainMismatch(t *testing.T) {
	source := &fakeChain{chainID: 17000, head: 10}
	exporter, err := NewEventsExporter(source, newCollector(t, source, 50), &memoryStore{}, nil, EventsConfig{ChainID: 1})
	if err != nil {
		t.Fatal(err)
	}
	_, err = exporter.Export(context.Background(), []deployments.VaultGroup{eventGroup()})
	var mismatch *ChainMismatchError
	if !errors.As(err, &mismatch) || mismatch.Got != 17000 {
		t.Fatalf("expected chain mismatch, got %v", err)
	}
	if len(source.calls) != 0 {
		t.Errorf("expected no log queries, got %v", source.calls)
	}
}

func TestPadData(t *testing.T) {
	if got := padData("0x01", 0); got != "0x01" {
		t.Errorf("padData without words = %s", got)
	}
	if got := padData("0x", 1); got != "0x"+strings.Repeat("0", 64) {
		t.Errorf("padData one word = %s", got)
	}
}
