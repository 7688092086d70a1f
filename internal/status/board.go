// internal/status/board.go
package status

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// Board routes outcomes to one Publisher per configured device.
// Each device owns its own block, so a success on one device never
// resets the failure counter of another.
type Board struct {
	mu   sync.RWMutex
	pubs map[string]*Publisher
}

func NewBoard() *Board {
	return &Board{pubs: make(map[string]*Publisher)}
}

// Add registers the block for a device.
func (b *Board) Add(device string, p *Publisher) error {
	if device == "" {
		return fmt.Errorf("status board: device name required")
	}
	if p == nil {
		return fmt.Errorf("status board: device %q: publisher required", device)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.pubs[device]; exists {
		return fmt.Errorf("status board: device %q already has a block", device)
	}
	b.pubs[device] = p
	return nil
}

// AddBlock builds the writer and publisher for a device block on cli.
func (b *Board) AddBlock(device string, cli EndpointClient, unitID uint8, slot uint16, log logrus.FieldLogger) error {
	w, err := NewWriter(cli, unitID, slot)
	if err != nil {
		return fmt.Errorf("device %q: %w", device, err)
	}
	return b.Add(device, NewPublisher(w, log.WithFields(logrus.Fields{
		"device": device,
		"slot":   slot,
	})))
}

// Publish hands the outcome to the device's publisher.
// It reports false when the device has no block.
func (b *Board) Publish(device string, o wizard.Outcome) bool {
	b.mu.RLock()
	p, ok := b.pubs[device]
	b.mu.RUnlock()

	if !ok {
		return false
	}
	p.Observe(o)
	return true
}

// Snapshot returns the device's current state.
func (b *Board) Snapshot(device string) (Snapshot, bool) {
	b.mu.RLock()
	p, ok := b.pubs[device]
	b.mu.RUnlock()

	if !ok {
		return Snapshot{}, false
	}
	return p.Snapshot(), true
}

// Devices lists the devices that own a block, sorted.
func (b *Board) Devices() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.pubs))
	for name := range b.pubs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
