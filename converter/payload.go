// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package converter gives RunState and StateData a persisted wire shape.
// The core state machine never touches bytes; this package is what a
// snapshot store uses on either side of that boundary.
package converter

import (
	"encoding/json"
	"fmt"
	"reflect"
)

const (
	metadataEncoding     = "encoding"
	metadataEncodingRaw  = "raw"
	metadataEncodingJSON = "json"
)

// Payload is a self-describing byte blob: Metadata records how Data was
// encoded so FromData knows how to reverse it without out-of-band schema
// knowledge.
type Payload struct {
	Metadata map[string][]byte
	Data     []byte
}

// PayloadConverter converts a single Go value to and from a Payload.
type PayloadConverter interface {
	ToPayload(value interface{}) (Payload, error)
	FromPayload(payload Payload, valuePtr interface{}) error
}

type defaultPayloadConverter struct{}

// DefaultPayloadConverter encodes []byte values raw and everything else as
// JSON, recording which in Payload.Metadata.
var DefaultPayloadConverter PayloadConverter = defaultPayloadConverter{}

func (defaultPayloadConverter) ToPayload(value interface{}) (Payload, error) {
	if raw, ok := value.([]byte); ok {
		return Payload{
			Metadata: map[string][]byte{metadataEncoding: []byte(metadataEncodingRaw)},
			Data:     raw,
		}, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return Payload{}, fmt.Errorf("encode to json: %w", err)
	}
	return Payload{
		Metadata: map[string][]byte{metadataEncoding: []byte(metadataEncodingJSON)},
		Data:     data,
	}, nil
}

func (defaultPayloadConverter) FromPayload(payload Payload, valuePtr interface{}) error {
	encoding, ok := payload.Metadata[metadataEncoding]
	if !ok {
		return fmt.Errorf("converter: payload metadata %q is not set", metadataEncoding)
	}

	switch string(encoding) {
	case metadataEncodingRaw:
		dst := reflect.ValueOf(valuePtr).Elem()
		if !dst.CanSet() {
			return fmt.Errorf("converter: unable to set raw bytes into %T", valuePtr)
		}
		dst.SetBytes(payload.Data)
		return nil
	case metadataEncodingJSON:
		if err := json.Unmarshal(payload.Data, valuePtr); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("converter: unsupported payload encoding %q", string(encoding))
	}
}
