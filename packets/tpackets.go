// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

// TPacketCase contains data for cross-checking the encoding and decoding
// of packets and expected failure scenarios.
type TPacketCase struct {
	RawBytes  []byte  // the bytes that make the packet
	Desc      string  // a description of the test
	FailFirst error   // expected fail result to be run immediately after decode
	Packet    *Packet // the packet that is expected
	Primary   bool    // primary cases round-trip byte-exact in both directions
	Case      byte    // the identifying byte of the case
}

// TPacketCases is a slice of TPacketCase.
type TPacketCases []TPacketCase

// Get returns a case matching a given T byte.
func (f TPacketCases) Get(b byte) TPacketCase {
	for _, v := range f {
		if v.Case == b {
			return v
		}
	}

	return TPacketCase{}
}

const (
	TConnectBasic byte = iota
	TConnectFull
	TConnectMalProtocolName
	TConnectInvalidProtocolVersion
	TConnectInvalidReservedBit
	TConnectInvalidUTF8D800
	TConnectInvalidUTF8Nul
	TConnackAccepted
	TConnackSessionPresent
	TConnackMalSessionPresent
	TPublishBasic
	TPublishQos1
	TPublishMqtt5
	TPublishQos2
	TPublishMalTopicName
	TPuback
	TPubackMqtt5
	TPubrec
	TPubrel
	TPubrelMqtt5
	TPubcomp
	TSubscribe
	TSubscribeMqtt5
	TSubscribeInvalidNoFilters
	TSuback
	TUnsubscribe
	TUnsuback
	TPingreq
	TPingresp
	TDisconnect
	TDisconnectMqtt5
	TAuth
	TAuthMqtt5
	TAuthInvalidReason
)

// TPacketData contains individual encoding and decoding scenarios for each
// packet type.
var TPacketData = map[byte]TPacketCases{
	Connect: {
		{
			Case:    TConnectBasic,
			Desc:    "clean start, no properties",
			Primary: true,
			RawBytes: []byte{
				Connect << 4, 15, // Fixed header
				0, 4, // Protocol Name - MSB+LSB
				'M', 'Q', 'T', 'T', // Protocol Name
				5,     // Protocol Version
				2,     // Packet Flags (clean start)
				0, 60, // Keepalive
				0,    // Properties length
				0, 2, // Client ID - MSB+LSB
				'c', '1',
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Connect,
					Remaining: 15,
				},
				Connect: ConnectParams{
					Clean:            true,
					Keepalive:        60,
					ClientIdentifier: "c1",
				},
			},
		},
		{
			Case:    TConnectFull,
			Desc:    "will, user/pass, session expiry",
			Primary: true,
			RawBytes: []byte{
				Connect << 4, 54, // Fixed header
				0, 4, // Protocol Name - MSB+LSB
				'M', 'Q', 'T', 'T', // Protocol Name
				5,     // Protocol Version
				0xCE,  // Packet Flags (user, pass, will qos 1, will, clean)
				0, 30, // Keepalive
				5,                // Properties length
				17, 0, 0, 0, 120, // Session Expiry Interval (17)
				0, 3, // Client ID - MSB+LSB
				'z', 'e', 'n',
				5,               // will properties length
				24, 0, 0, 2, 88, // Will Delay Interval (24)
				0, 3, // Will Topic - MSB+LSB
				'l', 'w', 't',
				0, 8, // Will Payload - MSB+LSB
				'n', 'o', 't', 'a', 'g', 'a', 'i', 'n',
				0, 4, // Username - MSB+LSB
				't', 'e', 'r', 'n',
				0, 4, // Password - MSB+LSB
				'p', 'a', 's', 's',
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Connect,
					Remaining: 54,
				},
				Connect: ConnectParams{
					Clean:            true,
					Keepalive:        30,
					ClientIdentifier: "zen",
					WillFlag:         true,
					WillQos:          1,
					WillTopic:        "lwt",
					WillPayload:      []byte("notagain"),
					WillProperties: Properties{
						WillDelayInterval: 600,
					},
					UsernameFlag: true,
					Username:     []byte("tern"),
					PasswordFlag: true,
					Password:     []byte("pass"),
				},
				Properties: Properties{
					SessionExpiryInterval:     120,
					SessionExpiryIntervalFlag: true,
				},
			},
		},
		{
			Case: TConnectMalProtocolName,
			Desc: "malformed protocol name",
			RawBytes: []byte{
				Connect << 4, 4, // Fixed header
				0, 7, // Protocol Name - MSB+LSB
				'M', 'Q',
			},
			FailFirst: ErrMalformedProtocolName,
		},
		{
			Case: TConnectInvalidProtocolVersion,
			Desc: "invalid protocol version",
			RawBytes: []byte{
				Connect << 4, 14, // Fixed header
				0, 4, // Protocol Name - MSB+LSB
				'M', 'Q', 'T', 'T', // Protocol Name
				4,     // Protocol Version
				2,     // Packet Flags
				0, 60, // Keepalive
				0, 2, // Client ID - MSB+LSB
				'c', '1',
			},
			FailFirst: ErrUnsupportedProtocolVersion,
		},
		{
			Case: TConnectInvalidReservedBit,
			Desc: "reserved bit not 0",
			RawBytes: []byte{
				Connect << 4, 15, // Fixed header
				0, 4, // Protocol Name - MSB+LSB
				'M', 'Q', 'T', 'T', // Protocol Name
				5,     // Protocol Version
				3,     // Packet Flags (reserved bit set)
				0, 60, // Keepalive
				0,    // Properties length
				0, 2, // Client ID - MSB+LSB
				'c', '1',
			},
			FailFirst: ErrProtocolViolationReservedBit,
		},
		{
			Case: TConnectInvalidUTF8D800,
			Desc: "client id contains utf-16 surrogate",
			RawBytes: []byte{
				Connect << 4, 16, // Fixed header
				0, 4, // Protocol Name - MSB+LSB
				'M', 'Q', 'T', 'T', // Protocol Name
				5,     // Protocol Version
				2,     // Packet Flags
				0, 60, // Keepalive
				0,    // Properties length
				0, 3, // Client ID - MSB+LSB
				0xED, 0xA0, 0x80, // U+D800
			},
			FailFirst: ErrMalformedInvalidUTF8,
		},
		{
			Case: TConnectInvalidUTF8Nul,
			Desc: "client id contains U+0000",
			RawBytes: []byte{
				Connect << 4, 16, // Fixed header
				0, 4, // Protocol Name - MSB+LSB
				'M', 'Q', 'T', 'T', // Protocol Name
				5,     // Protocol Version
				2,     // Packet Flags
				0, 60, // Keepalive
				0,    // Properties length
				0, 3, // Client ID - MSB+LSB
				'c', 0x00, '1',
			},
			FailFirst: ErrMalformedInvalidUTF8,
		},
	},
	Connack: {
		{
			Case:    TConnackAccepted,
			Desc:    "accepted, no session",
			Primary: true,
			RawBytes: []byte{
				Connack << 4, 3, // Fixed header
				0, // Session Present
				0, // Reason Code
				0, // Properties length
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Connack,
					Remaining: 3,
				},
			},
		},
		{
			Case:    TConnackSessionPresent,
			Desc:    "accepted, session present, assigned client id",
			Primary: true,
			RawBytes: []byte{
				Connack << 4, 9, // Fixed header
				1, // Session Present
				0, // Reason Code
				6, // Properties length
				18, 0, 3, 'a', 'b', 'c', // Assigned Client ID (18)
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Connack,
					Remaining: 9,
				},
				SessionPresent: true,
				Properties: Properties{
					AssignedClientID: "abc",
				},
			},
		},
		{
			Case: TConnackMalSessionPresent,
			Desc: "reserved connack flag bits set",
			RawBytes: []byte{
				Connack << 4, 3, // Fixed header
				6, // Session Present (invalid)
				0, // Reason Code
				0, // Properties length
			},
			FailFirst: ErrMalformedSessionPresent,
		},
	},
	Publish: {
		{
			Case:    TPublishBasic,
			Desc:    "qos 0",
			Primary: true,
			RawBytes: []byte{
				Publish << 4, 8, // Fixed header
				0, 3, // Topic Name - MSB+LSB
				'a', '/', 'b',
				0,        // Properties length
				'h', 'i', // Payload
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Publish,
					Remaining: 8,
				},
				TopicName: "a/b",
				Payload:   []byte("hi"),
			},
		},
		{
			Case:    TPublishQos1,
			Desc:    "qos 1",
			Primary: true,
			RawBytes: []byte{
				Publish<<4 | 1<<1, 10, // Fixed header (qos 1)
				0, 3, // Topic Name - MSB+LSB
				'a', '/', 'b',
				0, 7, // Packet ID
				0,        // Properties length
				'h', 'i', // Payload
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Publish,
					Qos:       1,
					Remaining: 10,
				},
				TopicName: "a/b",
				PacketID:  7,
				Payload:   []byte("hi"),
			},
		},
		{
			Case:    TPublishMqtt5,
			Desc:    "qos 1 with properties",
			Primary: true,
			RawBytes: []byte{
				Publish<<4 | 1<<1, 19, // Fixed header (qos 1)
				0, 3, // Topic Name - MSB+LSB
				'a', '/', 'b',
				0, 7, // Packet ID
				9,    // Properties length
				1, 1, // Payload Format (1)
				38, // User Properties (38)
				0, 1, 'k',
				0, 1, 'v',
				'h', 'i', // Payload
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Publish,
					Qos:       1,
					Remaining: 19,
				},
				TopicName: "a/b",
				PacketID:  7,
				Properties: Properties{
					PayloadFormat:     1,
					PayloadFormatFlag: true,
					User: []UserProperty{
						{Key: "k", Val: "v"},
					},
				},
				Payload: []byte("hi"),
			},
		},
		{
			Case:    TPublishQos2,
			Desc:    "qos 2, retain",
			Primary: true,
			RawBytes: []byte{
				Publish<<4 | 2<<1 | 1, 10, // Fixed header (qos 2, retain)
				0, 3, // Topic Name - MSB+LSB
				'a', '/', 'b',
				0, 9, // Packet ID
				0,        // Properties length
				'h', 'i', // Payload
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Publish,
					Qos:       2,
					Retain:    true,
					Remaining: 10,
				},
				TopicName: "a/b",
				PacketID:  9,
				Payload:   []byte("hi"),
			},
		},
		{
			Case: TPublishMalTopicName,
			Desc: "topic name overruns buffer",
			RawBytes: []byte{
				Publish << 4, 4, // Fixed header
				0, 5, // Topic Name - MSB+LSB
				'a', '/',
			},
			FailFirst: ErrMalformedTopic,
		},
	},
	Puback: {
		{
			Case:    TPuback,
			Desc:    "puback success short form",
			Primary: true,
			RawBytes: []byte{
				Puback << 4, 2, // Fixed header
				0, 7, // Packet ID
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Puback,
					Remaining: 2,
				},
				PacketID: 7,
			},
		},
		{
			Case:    TPubackMqtt5,
			Desc:    "puback no matching subscribers",
			Primary: true,
			RawBytes: []byte{
				Puback << 4, 4, // Fixed header
				0, 7, // Packet ID
				0x10, // Reason Code (no matching subscribers)
				0,    // Properties length
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Puback,
					Remaining: 4,
				},
				PacketID:   7,
				ReasonCode: 0x10,
			},
		},
	},
	Pubrec: {
		{
			Case:    TPubrec,
			Desc:    "pubrec success short form",
			Primary: true,
			RawBytes: []byte{
				Pubrec << 4, 2, // Fixed header
				0, 7, // Packet ID
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Pubrec,
					Remaining: 2,
				},
				PacketID: 7,
			},
		},
	},
	Pubrel: {
		{
			Case:    TPubrel,
			Desc:    "pubrel success short form",
			Primary: true,
			RawBytes: []byte{
				Pubrel<<4 | 1<<1, 2, // Fixed header (flags 0b0010)
				0, 7, // Packet ID
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Pubrel,
					Qos:       1,
					Remaining: 2,
				},
				PacketID: 7,
			},
		},
		{
			Case:    TPubrelMqtt5,
			Desc:    "pubrel packet identifier not found",
			Primary: true,
			RawBytes: []byte{
				Pubrel<<4 | 1<<1, 4, // Fixed header (flags 0b0010)
				0, 7, // Packet ID
				0x92, // Reason Code (packet identifier not found)
				0,    // Properties length
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Pubrel,
					Qos:       1,
					Remaining: 4,
				},
				PacketID:   7,
				ReasonCode: 0x92,
			},
		},
	},
	Pubcomp: {
		{
			Case:    TPubcomp,
			Desc:    "pubcomp success short form",
			Primary: true,
			RawBytes: []byte{
				Pubcomp << 4, 2, // Fixed header
				0, 7, // Packet ID
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Pubcomp,
					Remaining: 2,
				},
				PacketID: 7,
			},
		},
	},
	Subscribe: {
		{
			Case:    TSubscribe,
			Desc:    "single filter, qos 1",
			Primary: true,
			RawBytes: []byte{
				Subscribe<<4 | 1<<1, 9, // Fixed header (flags 0b0010)
				0, 15, // Packet ID
				0,    // Properties length
				0, 3, // Filter - MSB+LSB
				'a', '/', 'b',
				1, // subscription options (qos 1)
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Subscribe,
					Qos:       1,
					Remaining: 9,
				},
				PacketID: 15,
				Filters: Subscriptions{
					{Filter: "a/b", Qos: 1},
				},
			},
		},
		{
			Case:    TSubscribeMqtt5,
			Desc:    "subscription identifier and options",
			Primary: true,
			RawBytes: []byte{
				Subscribe<<4 | 1<<1, 11, // Fixed header (flags 0b0010)
				0, 16, // Packet ID
				2,     // Properties length
				11, 2, // Subscription Identifier (11)
				0, 3, // Filter - MSB+LSB
				'a', '/', 'b',
				0x1E, // subscription options (qos 2, no local, rap, rh 1)
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Subscribe,
					Qos:       1,
					Remaining: 11,
				},
				PacketID: 16,
				Properties: Properties{
					SubscriptionIdentifier: []int{2},
				},
				Filters: Subscriptions{
					{
						Filter:            "a/b",
						Qos:               2,
						NoLocal:           true,
						RetainAsPublished: true,
						RetainHandling:    1,
						Identifier:        2,
					},
				},
			},
		},
		{
			Case: TSubscribeInvalidNoFilters,
			Desc: "no filters",
			RawBytes: []byte{
				Subscribe<<4 | 1<<1, 3, // Fixed header (flags 0b0010)
				0, 17, // Packet ID
				0, // Properties length
			},
			FailFirst: ErrProtocolViolationNoFilters,
		},
	},
	Suback: {
		{
			Case:    TSuback,
			Desc:    "granted qos 1",
			Primary: true,
			RawBytes: []byte{
				Suback << 4, 4, // Fixed header
				0, 15, // Packet ID
				0, // Properties length
				1, // Reason Code (granted qos 1)
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Suback,
					Remaining: 4,
				},
				PacketID:    15,
				ReasonCodes: []byte{1},
			},
		},
	},
	Unsubscribe: {
		{
			Case:    TUnsubscribe,
			Desc:    "single filter",
			Primary: true,
			RawBytes: []byte{
				Unsubscribe<<4 | 1<<1, 8, // Fixed header (flags 0b0010)
				0, 18, // Packet ID
				0,    // Properties length
				0, 3, // Filter - MSB+LSB
				'a', '/', 'b',
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Unsubscribe,
					Qos:       1,
					Remaining: 8,
				},
				PacketID: 18,
				Filters: Subscriptions{
					{Filter: "a/b"},
				},
			},
		},
	},
	Unsuback: {
		{
			Case:    TUnsuback,
			Desc:    "success",
			Primary: true,
			RawBytes: []byte{
				Unsuback << 4, 4, // Fixed header
				0, 18, // Packet ID
				0, // Properties length
				0, // Reason Code (success)
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Unsuback,
					Remaining: 4,
				},
				PacketID:    18,
				ReasonCodes: []byte{0},
			},
		},
	},
	Pingreq: {
		{
			Case:    TPingreq,
			Desc:    "pingreq",
			Primary: true,
			RawBytes: []byte{
				Pingreq << 4, 0, // Fixed header
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type: Pingreq,
				},
			},
		},
	},
	Pingresp: {
		{
			Case:    TPingresp,
			Desc:    "pingresp",
			Primary: true,
			RawBytes: []byte{
				Pingresp << 4, 0, // Fixed header
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type: Pingresp,
				},
			},
		},
	},
	Disconnect: {
		{
			Case:    TDisconnect,
			Desc:    "normal disconnection, empty body",
			Primary: true,
			RawBytes: []byte{
				Disconnect << 4, 0, // Fixed header
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type: Disconnect,
				},
			},
		},
		{
			Case:    TDisconnectMqtt5,
			Desc:    "session taken over",
			Primary: true,
			RawBytes: []byte{
				Disconnect << 4, 2, // Fixed header
				0x8E, // Reason Code (session taken over)
				0,    // Properties length
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Disconnect,
					Remaining: 2,
				},
				ReasonCode: 0x8E,
			},
		},
	},
	Auth: {
		{
			Case:    TAuth,
			Desc:    "auth success, empty body",
			Primary: true,
			RawBytes: []byte{
				Auth << 4, 0, // Fixed header
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type: Auth,
				},
			},
		},
		{
			Case:    TAuthMqtt5,
			Desc:    "continue authentication",
			Primary: true,
			RawBytes: []byte{
				Auth << 4, 10, // Fixed header
				0x18, // Reason Code (continue authentication)
				8,    // Properties length
				21, 0, 5, 'S', 'C', 'R', 'A', 'M', // Authentication Method (21)
			},
			Packet: &Packet{
				FixedHeader: FixedHeader{
					Type:      Auth,
					Remaining: 10,
				},
				ReasonCode: 0x18,
				Properties: Properties{
					AuthenticationMethod: "SCRAM",
				},
			},
		},
		{
			Case: TAuthInvalidReason,
			Desc: "invalid auth reason code",
			RawBytes: []byte{
				Auth << 4, 2, // Fixed header
				0x81, // Reason Code (invalid for auth)
				0,    // Properties length
			},
			FailFirst: ErrProtocolViolationInvalidReason,
		},
	},
}
