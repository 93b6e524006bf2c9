package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgWelcome = "welcome"
)

const (
	Version       = 1
	ClientInputHz = 50
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

// Hello is the first message a controller sends.
type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

// Input is one tilt sample from a phone, screen-aligned and normalised.
type Input struct {
	Ax float64 `json:"ax"` // -1..1, positive tilts toward screen right
	Ay float64 `json:"ay"` // -1..1, positive tilts toward screen bottom
}

type Welcome struct {
	ControllerID string `json:"controllerId"`
	InputHz      int    `json:"inputHz"`
}
