// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"errors"
	"sync"
)

// ErrIDExhausted is returned by Acquire when every identifier in the pool's
// space is live.
var ErrIDExhausted = errors.New("packet identifier space exhausted")

// Identifier pool widths. The wire protocol uses 16 bit identifiers; the
// 32 bit space exists for broker-side fan-out bookkeeping where a single
// inbound message maps to many outbound deliveries.
const (
	IDWidth16 = 16
	IDWidth32 = 32
)

// IDPool hands out unique packet identifiers for a session and tracks them
// until they are released by the terminal acknowledgement. Identifier 0 is
// never issued. [MQTT-2.2.1-2]
type IDPool struct {
	sync.Mutex
	used   map[uint32]struct{}
	cursor uint32
	max    uint32
}

// NewIDPool returns an identifier pool over the given width (IDWidth16 or
// IDWidth32).
func NewIDPool(width int) *IDPool {
	max := uint32(65535)
	if width == IDWidth32 {
		max = 4294967295
	}

	return &IDPool{
		used: make(map[uint32]struct{}),
		max:  max,
	}
}

// Acquire returns the next free identifier. Identifiers are issued in
// strictly increasing order modulo the identifier space, skipping live
// ones. Fails with ErrIDExhausted only when the live set fills the space.
func (p *IDPool) Acquire() (uint32, error) {
	p.Lock()
	defer p.Unlock()

	if uint32(len(p.used)) >= p.max {
		return 0, ErrIDExhausted
	}

	for {
		p.cursor++
		if p.cursor > p.max || p.cursor == 0 {
			p.cursor = 1
		}

		if _, ok := p.used[p.cursor]; !ok {
			p.used[p.cursor] = struct{}{}
			return p.cursor, nil
		}
	}
}

// Release returns an identifier to the pool. Releasing an identifier which
// is not live is a no-op, so duplicate acknowledgements are tolerated.
func (p *IDPool) Release(id uint32) {
	p.Lock()
	defer p.Unlock()
	delete(p.used, id)
}

// Occupy re-arms an identifier restored from a persisted session so that
// it cannot be issued again until released. Idempotent.
func (p *IDPool) Occupy(id uint32) {
	if id == 0 {
		return
	}

	p.Lock()
	defer p.Unlock()
	p.used[id] = struct{}{}
}

// Free reports whether an identifier is available for issue.
func (p *IDPool) Free(id uint32) bool {
	p.Lock()
	defer p.Unlock()
	_, ok := p.used[id]
	return !ok
}

// Len returns the number of live identifiers.
func (p *IDPool) Len() int {
	p.Lock()
	defer p.Unlock()
	return len(p.used)
}
