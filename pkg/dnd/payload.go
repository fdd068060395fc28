package dnd

import (
	"fmt"

	"github.com/goccy/go-json"
)

// payload is the out-of-band origin a child drag carries. The container id
// is null for root-sequence origins.
type payload struct {
	SrcType     ContainerType `json:"srcType"`
	ContainerID *string       `json:"containerId"`
	SrcIndex    *int          `json:"srcIndex"`
}

// EncodePayload serialises the origin of a child drag.
func EncodePayload(src Location) (string, error) {
	if err := src.validate(); err != nil {
		return "", err
	}
	index := src.Index
	p := payload{SrcType: src.Type, SrcIndex: &index}
	if src.Type != Root {
		id := src.ContainerID
		p.ContainerID = &id
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("dnd: encode payload: %w", err)
	}
	return string(raw), nil
}

// DecodePayload parses a payload produced by EncodePayload.
func DecodePayload(raw string) (Location, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Location{}, fmt.Errorf("dnd: decode payload: %v: %w", err, ErrInvalidPayload)
	}
	if p.SrcIndex == nil {
		return Location{}, fmt.Errorf("dnd: payload without srcIndex: %w", ErrInvalidPayload)
	}
	l := Location{Type: p.SrcType, Index: *p.SrcIndex}
	if p.ContainerID != nil {
		l.ContainerID = *p.ContainerID
	}
	if l.Type == Root {
		l.ContainerID = ""
	}
	if err := l.validate(); err != nil {
		return Location{}, fmt.Errorf("dnd: payload origin: %v: %w", err, ErrInvalidPayload)
	}
	return l, nil
}
