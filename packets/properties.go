// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: 2026 xiaostang

package packets

import (
	"bytes"
)

const (
	PropPayloadFormat          byte = 1
	PropMessageExpiryInterval  byte = 2
	PropContentType            byte = 3
	PropResponseTopic          byte = 8
	PropCorrelationData        byte = 9
	PropSubscriptionIdentifier byte = 11
	PropSessionExpiryInterval  byte = 17
	PropAssignedClientID       byte = 18
	PropServerKeepAlive        byte = 19
	PropAuthenticationMethod   byte = 21
	PropAuthenticationData     byte = 22
	PropRequestProblemInfo     byte = 23
	PropWillDelayInterval      byte = 24
	PropRequestResponseInfo    byte = 25
	PropResponseInfo           byte = 26
	PropServerReference        byte = 28
	PropReasonString           byte = 31
	PropReceiveMaximum         byte = 33
	PropTopicAliasMaximum      byte = 34
	PropTopicAlias             byte = 35
	PropMaximumQos             byte = 36
	PropRetainAvailable        byte = 37
	PropUser                   byte = 38
	PropMaximumPacketSize      byte = 39
	PropWildcardSubAvailable   byte = 40
	PropSubIDAvailable         byte = 41
	PropSharedSubAvailable     byte = 42
)

// validPacketProperties indicates which properties are valid for which
// packet types, per table 2-4 of the specification.
var validPacketProperties = map[byte]map[byte]byte{
	PropPayloadFormat:          {Publish: 1, WillProperties: 1},
	PropMessageExpiryInterval:  {Publish: 1, WillProperties: 1},
	PropContentType:            {Publish: 1, WillProperties: 1},
	PropResponseTopic:          {Publish: 1, WillProperties: 1},
	PropCorrelationData:        {Publish: 1, WillProperties: 1},
	PropSubscriptionIdentifier: {Publish: 1, Subscribe: 1},
	PropSessionExpiryInterval:  {Connect: 1, Connack: 1, Disconnect: 1},
	PropAssignedClientID:       {Connack: 1},
	PropServerKeepAlive:        {Connack: 1},
	PropAuthenticationMethod:   {Connect: 1, Connack: 1, Auth: 1},
	PropAuthenticationData:     {Connect: 1, Connack: 1, Auth: 1},
	PropRequestProblemInfo:     {Connect: 1},
	PropWillDelayInterval:      {WillProperties: 1},
	PropRequestResponseInfo:    {Connect: 1},
	PropResponseInfo:           {Connack: 1},
	PropServerReference:        {Connack: 1, Disconnect: 1},
	PropReasonString:           {Connack: 1, Puback: 1, Pubrec: 1, Pubrel: 1, Pubcomp: 1, Suback: 1, Unsuback: 1, Disconnect: 1, Auth: 1},
	PropReceiveMaximum:         {Connect: 1, Connack: 1},
	PropTopicAliasMaximum:      {Connect: 1, Connack: 1},
	PropTopicAlias:             {Publish: 1},
	PropMaximumQos:             {Connack: 1},
	PropRetainAvailable:        {Connack: 1},
	PropUser:                   {Connect: 1, Connack: 1, Publish: 1, Puback: 1, Pubrec: 1, Pubrel: 1, Pubcomp: 1, Subscribe: 1, Suback: 1, Unsubscribe: 1, Unsuback: 1, Disconnect: 1, Auth: 1, WillProperties: 1},
	PropMaximumPacketSize:      {Connect: 1, Connack: 1},
	PropWildcardSubAvailable:   {Connack: 1},
	PropSubIDAvailable:         {Connack: 1},
	PropSharedSubAvailable:     {Connack: 1},
}

// repeatableProperties are the identifiers which may occur more than once
// within a single property block.
var repeatableProperties = map[byte]bool{
	PropSubscriptionIdentifier: true,
	PropUser:                   true,
}

// UserProperty is an arbitrary key-value pair for a packet user properties
// array. [MQTT-1.5.7-1]
type UserProperty struct {
	Key string `json:"k" msgpack:"k"`
	Val string `json:"v" msgpack:"v"`
}

// Properties contains all mqtt v5 properties available for a packet.
// Some properties have valid values of 0 or not-present. In this case, we
// opt for property flags to indicate the usage of the property.
// Refer to mqtt v5 2.2.2.2 Property spec for more information.
type Properties struct {
	CorrelationData           []byte         `json:"cd"`
	SubscriptionIdentifier    []int          `json:"si"`
	AuthenticationData        []byte         `json:"ad"`
	User                      []UserProperty `json:"user"`
	ContentType               string         `json:"ct"`
	ResponseTopic             string         `json:"rt"`
	AssignedClientID          string         `json:"aci"`
	AuthenticationMethod      string         `json:"am"`
	ResponseInfo              string         `json:"ri"`
	ServerReference           string         `json:"sr"`
	ReasonString              string         `json:"rs"`
	MessageExpiryInterval     uint32         `json:"me"`
	SessionExpiryInterval     uint32         `json:"sei"`
	WillDelayInterval         uint32         `json:"wdi"`
	MaximumPacketSize         uint32         `json:"mps"`
	ServerKeepAlive           uint16         `json:"ska"`
	ReceiveMaximum            uint16         `json:"rm"`
	TopicAliasMaximum         uint16         `json:"tam"`
	TopicAlias                uint16         `json:"ta"`
	PayloadFormat             byte           `json:"pf"`
	PayloadFormatFlag         bool           `json:"fpf"`
	SessionExpiryIntervalFlag bool           `json:"fsei"`
	ServerKeepAliveFlag       bool           `json:"fska"`
	RequestProblemInfo        byte           `json:"rpi"`
	RequestProblemInfoFlag    bool           `json:"frpi"`
	RequestResponseInfo       byte           `json:"rri"`
	TopicAliasFlag            bool           `json:"fta"`
	MaximumQos                byte           `json:"mqos"`
	MaximumQosFlag            bool           `json:"fmqos"`
	RetainAvailable           byte           `json:"ra"`
	RetainAvailableFlag       bool           `json:"fra"`
	WildcardSubAvailable      byte           `json:"wsa"`
	WildcardSubAvailableFlag  bool           `json:"fwsa"`
	SubIDAvailable            byte           `json:"sida"`
	SubIDAvailableFlag        bool           `json:"fsida"`
	SharedSubAvailable        byte           `json:"ssa"`
	SharedSubAvailableFlag    bool           `json:"fssa"`
}

// Copy creates a new Properties struct with copies of the values. Topic
// aliases are session-scoped and are only carried over when allowTransfer
// is set. [MQTT-3.3.2-7]
func (p *Properties) Copy(allowTransfer bool) Properties {
	pr := Properties{
		PayloadFormat:             p.PayloadFormat, // [MQTT-3.3.2-4]
		PayloadFormatFlag:         p.PayloadFormatFlag,
		MessageExpiryInterval:     p.MessageExpiryInterval,
		ContentType:               p.ContentType,   // [MQTT-3.3.2-20]
		ResponseTopic:             p.ResponseTopic, // [MQTT-3.3.2-15]
		SessionExpiryInterval:     p.SessionExpiryInterval,
		SessionExpiryIntervalFlag: p.SessionExpiryIntervalFlag,
		AssignedClientID:          p.AssignedClientID,
		ServerKeepAlive:           p.ServerKeepAlive,
		ServerKeepAliveFlag:       p.ServerKeepAliveFlag,
		AuthenticationMethod:      p.AuthenticationMethod,
		RequestProblemInfo:        p.RequestProblemInfo,
		RequestProblemInfoFlag:    p.RequestProblemInfoFlag,
		WillDelayInterval:         p.WillDelayInterval,
		RequestResponseInfo:       p.RequestResponseInfo,
		ResponseInfo:              p.ResponseInfo,
		ServerReference:           p.ServerReference,
		ReasonString:              p.ReasonString,
		ReceiveMaximum:            p.ReceiveMaximum,
		TopicAliasMaximum:         p.TopicAliasMaximum,
		MaximumQos:                p.MaximumQos,
		MaximumQosFlag:            p.MaximumQosFlag,
		RetainAvailable:           p.RetainAvailable,
		RetainAvailableFlag:       p.RetainAvailableFlag,
		MaximumPacketSize:         p.MaximumPacketSize,
		WildcardSubAvailable:      p.WildcardSubAvailable,
		WildcardSubAvailableFlag:  p.WildcardSubAvailableFlag,
		SubIDAvailable:            p.SubIDAvailable,
		SubIDAvailableFlag:        p.SubIDAvailableFlag,
		SharedSubAvailable:        p.SharedSubAvailable,
		SharedSubAvailableFlag:    p.SharedSubAvailableFlag,
	}

	if allowTransfer {
		pr.TopicAlias = p.TopicAlias
		pr.TopicAliasFlag = p.TopicAliasFlag
	}

	if len(p.CorrelationData) > 0 {
		pr.CorrelationData = append([]byte{}, p.CorrelationData...) // [MQTT-3.3.2-16]
	}

	if len(p.SubscriptionIdentifier) > 0 {
		pr.SubscriptionIdentifier = append([]int{}, p.SubscriptionIdentifier...)
	}

	if len(p.AuthenticationData) > 0 {
		pr.AuthenticationData = append([]byte{}, p.AuthenticationData...)
	}

	if len(p.User) > 0 {
		pr.User = append([]UserProperty{}, p.User...) // [MQTT-3.3.2-17]
	}

	return pr
}

// canEncode returns true if the property type is valid for the packet type.
func (p *Properties) canEncode(pkt byte, k byte) bool {
	return validPacketProperties[k][pkt] == 1
}

// Size returns the byte count of the encoded property block for the given
// packet type, excluding the outer variable byte integer length prefix.
// The conditions mirror Encode exactly; for every packet the invariant
// Size == number of property bytes written by Encode holds.
func (p *Properties) Size(pkt byte) int {
	if p == nil {
		return 0
	}

	var n int
	if p.canEncode(pkt, PropPayloadFormat) && p.PayloadFormatFlag {
		n += 2
	}

	if p.canEncode(pkt, PropMessageExpiryInterval) && p.MessageExpiryInterval > 0 {
		n += 5
	}

	if p.canEncode(pkt, PropContentType) && p.ContentType != "" {
		n += 3 + len(p.ContentType)
	}

	if p.canEncode(pkt, PropResponseTopic) && p.ResponseTopic != "" {
		n += 3 + len(p.ResponseTopic)
	}

	if p.canEncode(pkt, PropCorrelationData) && len(p.CorrelationData) > 0 {
		n += 3 + len(p.CorrelationData)
	}

	if p.canEncode(pkt, PropSubscriptionIdentifier) {
		for _, v := range p.SubscriptionIdentifier {
			if v > 0 {
				n += 1 + lengthBytes(v)
			}
		}
	}

	if p.canEncode(pkt, PropSessionExpiryInterval) && p.SessionExpiryIntervalFlag {
		n += 5
	}

	if p.canEncode(pkt, PropAssignedClientID) && p.AssignedClientID != "" {
		n += 3 + len(p.AssignedClientID)
	}

	if p.canEncode(pkt, PropServerKeepAlive) && p.ServerKeepAliveFlag {
		n += 3
	}

	if p.canEncode(pkt, PropAuthenticationMethod) && p.AuthenticationMethod != "" {
		n += 3 + len(p.AuthenticationMethod)
	}

	if p.canEncode(pkt, PropAuthenticationData) && len(p.AuthenticationData) > 0 {
		n += 3 + len(p.AuthenticationData)
	}

	if p.canEncode(pkt, PropRequestProblemInfo) && p.RequestProblemInfoFlag {
		n += 2
	}

	if p.canEncode(pkt, PropWillDelayInterval) && p.WillDelayInterval > 0 {
		n += 5
	}

	if p.canEncode(pkt, PropRequestResponseInfo) && p.RequestResponseInfo > 0 {
		n += 2
	}

	if p.canEncode(pkt, PropResponseInfo) && p.ResponseInfo != "" {
		n += 3 + len(p.ResponseInfo)
	}

	if p.canEncode(pkt, PropServerReference) && p.ServerReference != "" {
		n += 3 + len(p.ServerReference)
	}

	if p.canEncode(pkt, PropReasonString) && p.ReasonString != "" {
		n += 3 + len(p.ReasonString)
	}

	if p.canEncode(pkt, PropReceiveMaximum) && p.ReceiveMaximum > 0 {
		n += 3
	}

	if p.canEncode(pkt, PropTopicAliasMaximum) && p.TopicAliasMaximum > 0 {
		n += 3
	}

	if p.canEncode(pkt, PropTopicAlias) && p.TopicAliasFlag && p.TopicAlias > 0 {
		n += 3
	}

	if p.canEncode(pkt, PropMaximumQos) && p.MaximumQosFlag && p.MaximumQos < 2 {
		n += 2
	}

	if p.canEncode(pkt, PropRetainAvailable) && p.RetainAvailableFlag {
		n += 2
	}

	if p.canEncode(pkt, PropUser) {
		for _, v := range p.User {
			n += 5 + len(v.Key) + len(v.Val)
		}
	}

	if p.canEncode(pkt, PropMaximumPacketSize) && p.MaximumPacketSize > 0 {
		n += 5
	}

	if p.canEncode(pkt, PropWildcardSubAvailable) && p.WildcardSubAvailableFlag {
		n += 2
	}

	if p.canEncode(pkt, PropSubIDAvailable) && p.SubIDAvailableFlag {
		n += 2
	}

	if p.canEncode(pkt, PropSharedSubAvailable) && p.SharedSubAvailableFlag {
		n += 2
	}

	return n
}

// Encode encodes the properties into a bytes buffer, prefixed with the
// variable byte integer length of the block. Repeated user property and
// subscription identifier entries are written in caller order.
func (p *Properties) Encode(pkt byte, b *bytes.Buffer) {
	if p == nil {
		encodeLength(b, 0)
		return
	}

	encodeLength(b, int64(p.Size(pkt)))

	if p.canEncode(pkt, PropPayloadFormat) && p.PayloadFormatFlag {
		b.WriteByte(PropPayloadFormat)
		b.WriteByte(p.PayloadFormat)
	}

	if p.canEncode(pkt, PropMessageExpiryInterval) && p.MessageExpiryInterval > 0 {
		b.WriteByte(PropMessageExpiryInterval)
		b.Write(encodeUint32(p.MessageExpiryInterval))
	}

	if p.canEncode(pkt, PropContentType) && p.ContentType != "" {
		b.WriteByte(PropContentType)
		b.Write(encodeString(p.ContentType)) // [MQTT-3.3.2-19]
	}

	if p.canEncode(pkt, PropResponseTopic) && p.ResponseTopic != "" {
		b.WriteByte(PropResponseTopic)
		b.Write(encodeString(p.ResponseTopic)) // [MQTT-3.3.2-13]
	}

	if p.canEncode(pkt, PropCorrelationData) && len(p.CorrelationData) > 0 {
		b.WriteByte(PropCorrelationData)
		b.Write(encodeBytes(p.CorrelationData))
	}

	if p.canEncode(pkt, PropSubscriptionIdentifier) {
		for _, v := range p.SubscriptionIdentifier {
			if v > 0 {
				b.WriteByte(PropSubscriptionIdentifier)
				encodeLength(b, int64(v))
			}
		}
	}

	if p.canEncode(pkt, PropSessionExpiryInterval) && p.SessionExpiryIntervalFlag { // [MQTT-3.14.2-2]
		b.WriteByte(PropSessionExpiryInterval)
		b.Write(encodeUint32(p.SessionExpiryInterval))
	}

	if p.canEncode(pkt, PropAssignedClientID) && p.AssignedClientID != "" {
		b.WriteByte(PropAssignedClientID)
		b.Write(encodeString(p.AssignedClientID))
	}

	if p.canEncode(pkt, PropServerKeepAlive) && p.ServerKeepAliveFlag {
		b.WriteByte(PropServerKeepAlive)
		b.Write(encodeUint16(p.ServerKeepAlive))
	}

	if p.canEncode(pkt, PropAuthenticationMethod) && p.AuthenticationMethod != "" {
		b.WriteByte(PropAuthenticationMethod)
		b.Write(encodeString(p.AuthenticationMethod))
	}

	if p.canEncode(pkt, PropAuthenticationData) && len(p.AuthenticationData) > 0 {
		b.WriteByte(PropAuthenticationData)
		b.Write(encodeBytes(p.AuthenticationData))
	}

	if p.canEncode(pkt, PropRequestProblemInfo) && p.RequestProblemInfoFlag {
		b.WriteByte(PropRequestProblemInfo)
		b.WriteByte(p.RequestProblemInfo)
	}

	if p.canEncode(pkt, PropWillDelayInterval) && p.WillDelayInterval > 0 {
		b.WriteByte(PropWillDelayInterval)
		b.Write(encodeUint32(p.WillDelayInterval))
	}

	if p.canEncode(pkt, PropRequestResponseInfo) && p.RequestResponseInfo > 0 {
		b.WriteByte(PropRequestResponseInfo)
		b.WriteByte(p.RequestResponseInfo)
	}

	if p.canEncode(pkt, PropResponseInfo) && p.ResponseInfo != "" {
		b.WriteByte(PropResponseInfo)
		b.Write(encodeString(p.ResponseInfo))
	}

	if p.canEncode(pkt, PropServerReference) && p.ServerReference != "" {
		b.WriteByte(PropServerReference)
		b.Write(encodeString(p.ServerReference))
	}

	if p.canEncode(pkt, PropReasonString) && p.ReasonString != "" {
		b.WriteByte(PropReasonString)
		b.Write(encodeString(p.ReasonString))
	}

	if p.canEncode(pkt, PropReceiveMaximum) && p.ReceiveMaximum > 0 {
		b.WriteByte(PropReceiveMaximum)
		b.Write(encodeUint16(p.ReceiveMaximum))
	}

	if p.canEncode(pkt, PropTopicAliasMaximum) && p.TopicAliasMaximum > 0 {
		b.WriteByte(PropTopicAliasMaximum)
		b.Write(encodeUint16(p.TopicAliasMaximum))
	}

	if p.canEncode(pkt, PropTopicAlias) && p.TopicAliasFlag && p.TopicAlias > 0 { // [MQTT-3.3.2-8]
		b.WriteByte(PropTopicAlias)
		b.Write(encodeUint16(p.TopicAlias))
	}

	if p.canEncode(pkt, PropMaximumQos) && p.MaximumQosFlag && p.MaximumQos < 2 {
		b.WriteByte(PropMaximumQos)
		b.WriteByte(p.MaximumQos)
	}

	if p.canEncode(pkt, PropRetainAvailable) && p.RetainAvailableFlag {
		b.WriteByte(PropRetainAvailable)
		b.WriteByte(p.RetainAvailable)
	}

	if p.canEncode(pkt, PropUser) {
		for _, v := range p.User {
			b.WriteByte(PropUser)
			b.Write(encodeString(v.Key))
			b.Write(encodeString(v.Val))
		}
	}

	if p.canEncode(pkt, PropMaximumPacketSize) && p.MaximumPacketSize > 0 {
		b.WriteByte(PropMaximumPacketSize)
		b.Write(encodeUint32(p.MaximumPacketSize))
	}

	if p.canEncode(pkt, PropWildcardSubAvailable) && p.WildcardSubAvailableFlag {
		b.WriteByte(PropWildcardSubAvailable)
		b.WriteByte(p.WildcardSubAvailable)
	}

	if p.canEncode(pkt, PropSubIDAvailable) && p.SubIDAvailableFlag {
		b.WriteByte(PropSubIDAvailable)
		b.WriteByte(p.SubIDAvailable)
	}

	if p.canEncode(pkt, PropSharedSubAvailable) && p.SharedSubAvailableFlag {
		b.WriteByte(PropSharedSubAvailable)
		b.WriteByte(p.SharedSubAvailable)
	}
}

// Decode decodes a property block from buf beginning at offset, returning
// the offset of the first byte after the block. The block is prefixed with
// a variable byte integer length; decoding continues until the declared
// length is exhausted. Singleton identifiers may appear at most once.
func (p *Properties) Decode(pkt byte, buf []byte, offset int) (int, error) {
	if p == nil {
		return offset, nil
	}

	n, offset, err := decodeLength(buf, offset)
	if err != nil {
		return offset, err
	}

	end := offset + n
	if end > len(buf) {
		return offset, ErrMalformedProperties
	}

	var k byte
	seen := make(map[byte]bool)
	for offset < end {
		k, offset, err = decodeByte(buf, offset)
		if err != nil {
			return offset, err
		}

		valid, ok := validPacketProperties[k]
		if !ok {
			return offset, ErrMalformedBadProperty
		}

		if _, ok := valid[pkt]; !ok {
			return offset, ErrProtocolViolationUnsupportedProperty
		}

		if seen[k] && !repeatableProperties[k] {
			return offset, ErrProtocolViolationDupProperty
		}
		seen[k] = true

		switch k {
		case PropPayloadFormat:
			p.PayloadFormat, offset, err = decodeByte(buf, offset)
			p.PayloadFormatFlag = true
			if err == nil && p.PayloadFormat > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropMessageExpiryInterval:
			p.MessageExpiryInterval, offset, err = decodeUint32(buf, offset)
		case PropContentType:
			p.ContentType, offset, err = decodeString(buf, offset)
		case PropResponseTopic:
			p.ResponseTopic, offset, err = decodeString(buf, offset)
		case PropCorrelationData:
			p.CorrelationData, offset, err = decodeBytes(buf, offset)
		case PropSubscriptionIdentifier:
			var v int
			v, offset, err = decodeLength(buf, offset)
			if err == nil && v == 0 {
				return offset, ErrProtocolViolationZeroSubID
			}
			p.SubscriptionIdentifier = append(p.SubscriptionIdentifier, v)
		case PropSessionExpiryInterval:
			p.SessionExpiryInterval, offset, err = decodeUint32(buf, offset)
			p.SessionExpiryIntervalFlag = true
		case PropAssignedClientID:
			p.AssignedClientID, offset, err = decodeString(buf, offset)
		case PropServerKeepAlive:
			p.ServerKeepAlive, offset, err = decodeUint16(buf, offset)
			p.ServerKeepAliveFlag = true
		case PropAuthenticationMethod:
			p.AuthenticationMethod, offset, err = decodeString(buf, offset)
		case PropAuthenticationData:
			p.AuthenticationData, offset, err = decodeBytes(buf, offset)
		case PropRequestProblemInfo:
			p.RequestProblemInfo, offset, err = decodeByte(buf, offset)
			p.RequestProblemInfoFlag = true
			if err == nil && p.RequestProblemInfo > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropWillDelayInterval:
			p.WillDelayInterval, offset, err = decodeUint32(buf, offset)
		case PropRequestResponseInfo:
			p.RequestResponseInfo, offset, err = decodeByte(buf, offset)
			if err == nil && p.RequestResponseInfo > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropResponseInfo:
			p.ResponseInfo, offset, err = decodeString(buf, offset)
		case PropServerReference:
			p.ServerReference, offset, err = decodeString(buf, offset)
		case PropReasonString:
			p.ReasonString, offset, err = decodeString(buf, offset)
		case PropReceiveMaximum:
			p.ReceiveMaximum, offset, err = decodeUint16(buf, offset)
			if err == nil && p.ReceiveMaximum == 0 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropTopicAliasMaximum:
			p.TopicAliasMaximum, offset, err = decodeUint16(buf, offset)
		case PropTopicAlias:
			p.TopicAlias, offset, err = decodeUint16(buf, offset)
			p.TopicAliasFlag = true
			if err == nil && p.TopicAlias == 0 {
				return offset, ErrTopicAliasInvalid
			}
		case PropMaximumQos:
			p.MaximumQos, offset, err = decodeByte(buf, offset)
			p.MaximumQosFlag = true
			if err == nil && p.MaximumQos > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropRetainAvailable:
			p.RetainAvailable, offset, err = decodeByte(buf, offset)
			p.RetainAvailableFlag = true
			if err == nil && p.RetainAvailable > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropUser:
			var key, val string
			key, val, offset, err = decodeStringPair(buf, offset)
			p.User = append(p.User, UserProperty{Key: key, Val: val})
		case PropMaximumPacketSize:
			p.MaximumPacketSize, offset, err = decodeUint32(buf, offset)
			if err == nil && p.MaximumPacketSize == 0 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropWildcardSubAvailable:
			p.WildcardSubAvailable, offset, err = decodeByte(buf, offset)
			p.WildcardSubAvailableFlag = true
			if err == nil && p.WildcardSubAvailable > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropSubIDAvailable:
			p.SubIDAvailable, offset, err = decodeByte(buf, offset)
			p.SubIDAvailableFlag = true
			if err == nil && p.SubIDAvailable > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		case PropSharedSubAvailable:
			p.SharedSubAvailable, offset, err = decodeByte(buf, offset)
			p.SharedSubAvailableFlag = true
			if err == nil && p.SharedSubAvailable > 1 {
				return offset, ErrProtocolViolationInvalidProperty
			}
		}

		if err != nil {
			return offset, err
		}

		if offset > end { // property spilled past the declared block length
			return offset, ErrMalformedProperties
		}
	}

	return offset, nil
}
