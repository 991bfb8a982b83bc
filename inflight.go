// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package mqtt5

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/xiaostang/mqtt5/storage"
)

// InflightMessage is the in-memory record of a QoS>0 packet awaiting its
// terminal acknowledgement. Raw holds the frame exactly as transmitted.
type InflightMessage struct {
	Raw      []byte
	Created  int64
	PacketID uint16
	Kind     storage.Kind
	Restored bool
}

// Inflight is a map of in-flight messages keyed on packet id, with the
// send and receive quotas used for flow control.
type Inflight struct {
	sync.RWMutex
	internal            map[uint16]InflightMessage
	receiveQuota        int32 // remaining inbound qos quota for flow control
	sendQuota           int32 // remaining outbound qos quota for flow control
	maximumReceiveQuota int32 // maximum allowed receive quota
	maximumSendQuota    int32 // maximum allowed send quota
}

// NewInflights returns a new instance of an Inflight messages map.
func NewInflights() *Inflight {
	return &Inflight{
		internal: map[uint16]InflightMessage{},
	}
}

// Set adds or updates an in-flight message by packet id. Returns true if
// the message did not previously exist.
func (i *Inflight) Set(m InflightMessage) bool {
	i.Lock()
	defer i.Unlock()

	_, ok := i.internal[m.PacketID]
	i.internal[m.PacketID] = m
	return !ok
}

// Get returns an in-flight message by packet id.
func (i *Inflight) Get(id uint16) (InflightMessage, bool) {
	i.RLock()
	defer i.RUnlock()

	if m, ok := i.internal[id]; ok {
		return m, true
	}

	return InflightMessage{}, false
}

// Len returns the size of the in-flight messages map.
func (i *Inflight) Len() int {
	i.RLock()
	defer i.RUnlock()
	return len(i.internal)
}

// GetAll returns all in-flight messages in ascending order of creation.
func (i *Inflight) GetAll() []InflightMessage {
	i.RLock()
	defer i.RUnlock()

	m := []InflightMessage{}
	for _, v := range i.internal {
		m = append(m, v)
	}

	sort.Slice(m, func(a, b int) bool {
		return m[a].Created < m[b].Created
	})

	return m
}

// Delete removes an in-flight message from the map. Returns true if the
// message existed.
func (i *Inflight) Delete(id uint16) bool {
	i.Lock()
	defer i.Unlock()

	_, ok := i.internal[id]
	delete(i.internal, id)

	return ok
}

// TakeReceiveQuota reduces the receive quota by 1.
func (i *Inflight) TakeReceiveQuota() {
	if atomic.LoadInt32(&i.receiveQuota) > 0 {
		atomic.AddInt32(&i.receiveQuota, -1)
	}
}

// ReturnReceiveQuota increases the receive quota by 1.
func (i *Inflight) ReturnReceiveQuota() {
	if atomic.LoadInt32(&i.receiveQuota) < atomic.LoadInt32(&i.maximumReceiveQuota) {
		atomic.AddInt32(&i.receiveQuota, 1)
	}
}

// ResetReceiveQuota resets the receive quota to the maximum allowed value.
func (i *Inflight) ResetReceiveQuota(n int32) {
	atomic.StoreInt32(&i.receiveQuota, n)
	atomic.StoreInt32(&i.maximumReceiveQuota, n)
}

// TakeSendQuota reduces the send quota by 1, returning false if the quota
// was already exhausted.
func (i *Inflight) TakeSendQuota() bool {
	if atomic.LoadInt32(&i.sendQuota) > 0 {
		atomic.AddInt32(&i.sendQuota, -1)
		return true
	}
	return false
}

// ReturnSendQuota increases the send quota by 1.
func (i *Inflight) ReturnSendQuota() {
	if atomic.LoadInt32(&i.sendQuota) < atomic.LoadInt32(&i.maximumSendQuota) {
		atomic.AddInt32(&i.sendQuota, 1)
	}
}

// ResetSendQuota resets the send quota to the maximum allowed value.
func (i *Inflight) ResetSendQuota(n int32) {
	atomic.StoreInt32(&i.sendQuota, n)
	atomic.StoreInt32(&i.maximumSendQuota, n)
}

// SendQuota returns the current send quota.
func (i *Inflight) SendQuota() int32 {
	return atomic.LoadInt32(&i.sendQuota)
}
