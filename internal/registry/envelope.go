package registry

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// CodeOK is the envelope code of a successful lookup
const CodeOK = 0

// Envelope is the JSON body returned by a component lookup
type Envelope struct {
	Code int    `json:"code"`
	Data string `json:"data"`
	Msg  string `json:"msg"`
}

// OK reports whether the registry found the component
func (e *Envelope) OK() bool {
	return e.Code == CodeOK
}

// Message returns msg, or a generic text when the registry sent none
func (e *Envelope) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("registry returned code %d", e.Code)
}

// DecodeEnvelope parses a lookup response body
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("invalid registry response: %w", err)
	}
	return &env, nil
}
