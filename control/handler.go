// Package control exposes block constants to a control plane.
//
// Handler executes JSON commands against registered blocks:
//
//	{"command": "list"}
//	{"command": "get_constant", "block": "offset"}
//	{"command": "set_constant", "block": "offset", "value": 5}
//
// Complex values travel as strings in strconv.ParseComplex form ("3+4i").
// MQTTListener binds a Handler to MQTT topics and publishes a
// constant_changed event for every accepted set.
package control

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cwbudde/algo-blocks/block"
)

// Command is one control request.
type Command struct {
	Command string `json:"command"`
	Block   string `json:"block,omitempty"`
	Value   any    `json:"value,omitempty"`
}

// Response answers one Command.
type Response struct {
	CommandAck string         `json:"command_ack"`
	Status     string         `json:"status"`
	Block      string         `json:"block,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Error      string         `json:"error,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

// Event reports a constant change.
type Event struct {
	Event     string `json:"event"`
	Block     string `json:"block"`
	Type      string `json:"type"`
	Value     any    `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// ErrUnknownBlock is reported for unregistered block ids.
	ErrUnknownBlock = errors.New("control: unknown block")

	// ErrNoConstant is reported for blocks without a constant.
	ErrNoConstant = errors.New("control: block has no constant")

	errDuplicateBlock = errors.New("control: duplicate block id")
)

// Handler dispatches commands to a set of named blocks. It is safe for
// concurrent use.
type Handler struct {
	mu     sync.RWMutex
	blocks map[string]block.Processor
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler returns an empty handler. A nil logger discards output.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		blocks: make(map[string]block.Processor),
		logger: logger,
		now:    time.Now,
	}
}

// Register makes b reachable under id.
func (h *Handler) Register(id string, b block.Processor) error {
	if id == "" || b == nil {
		return errors.New("control: empty block id or nil block")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.blocks[id]; exists {
		return fmt.Errorf("%w: %s", errDuplicateBlock, id)
	}
	h.blocks[id] = b
	return nil
}

// IDs returns the registered block ids in sorted order.
func (h *Handler) IDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.blocks))
	for id := range h.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (h *Handler) lookup(id string) (block.Processor, error) {
	h.mu.RLock()
	b, ok := h.blocks[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, id)
	}
	return b, nil
}

func (h *Handler) constant(id string) (block.Constant, error) {
	b, err := h.lookup(id)
	if err != nil {
		return nil, err
	}
	c, ok := b.(block.Constant)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoConstant, id)
	}
	return c, nil
}

// Handle executes cmd.
func (h *Handler) Handle(cmd Command) Response {
	resp := Response{CommandAck: cmd.Command, Block: cmd.Block}

	var err error
	switch cmd.Command {
	case "list":
		resp.Data = h.list()

	case "get_constant":
		var c block.Constant
		if c, err = h.constant(cmd.Block); err == nil {
			resp.Data = map[string]any{"constant": EncodeValue(c.ConstantValue())}
		}

	case "set_constant":
		var c block.Constant
		if c, err = h.constant(cmd.Block); err == nil {
			if cmd.Value == nil {
				err = errors.New("control: set_constant requires a value")
			} else if err = c.SetConstantValue(cmd.Value); err == nil {
				resp.Data = map[string]any{"constant": EncodeValue(c.ConstantValue())}
				h.logger.Info("constant set", "block", cmd.Block, "constant", resp.Data["constant"])
			}
		}

	default:
		err = fmt.Errorf("unknown command: %s", cmd.Command)
	}

	if err != nil {
		resp.Status = StatusError
		resp.Error = err.Error()
		h.logger.Warn("control command failed", "command", cmd.Command, "block", cmd.Block, "error", err)
	} else {
		resp.Status = StatusSuccess
	}
	resp.Timestamp = h.timestamp()
	return resp
}

func (h *Handler) list() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]any, len(h.blocks))
	for id, b := range h.blocks {
		info := map[string]any{
			"operation": b.Op().String(),
			"input":     b.InputType().String(),
			"output":    b.OutputType().String(),
			"kernel":    b.Implementation(),
		}
		if c, ok := b.(block.Constant); ok {
			info["constant"] = EncodeValue(c.ConstantValue())
		}
		out[id] = info
	}
	return out
}

// HandleJSON decodes a JSON command, executes it and returns the encoded
// response. Numbers are kept exact as json.Number.
func (h *Handler) HandleJSON(payload []byte) []byte {
	var cmd Command
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var resp Response
	if err := dec.Decode(&cmd); err != nil {
		h.logger.Error("failed to parse control command", "error", err)
		resp = Response{
			CommandAck: "unknown",
			Status:     StatusError,
			Error:      "invalid JSON",
			Timestamp:  h.timestamp(),
		}
	} else {
		resp = h.Handle(cmd)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("failed to marshal response", "error", err)
		return []byte(`{"status":"error","error":"internal"}`)
	}
	return data
}

// Watch calls fn with an Event for every constant change on every
// registered constant block until cancel is called. Blocks registered
// after Watch are not observed.
func (h *Handler) Watch(buffer int, fn func(Event)) (cancel func(), err error) {
	h.mu.RLock()
	targets := make(map[string]block.Constant)
	for id, b := range h.blocks {
		if c, ok := b.(block.Constant); ok {
			targets[id] = c
		}
	}
	h.mu.RUnlock()

	var cancels []func()
	stopAll := func() {
		for _, c := range cancels {
			c()
		}
	}

	for id, c := range targets {
		typ := c.InputType().String()
		stop, err := c.Watch(buffer, func(v any) {
			fn(Event{
				Event:     "constant_changed",
				Block:     id,
				Type:      typ,
				Value:     EncodeValue(v),
				Timestamp: h.timestamp(),
			})
		})
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("control: watch %s: %w", id, err)
		}
		cancels = append(cancels, stop)
	}

	var once sync.Once
	return func() { once.Do(stopAll) }, nil
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}

// EncodeValue converts a constant to a JSON-friendly value: complex
// numbers become strings, everything else is returned unchanged.
func EncodeValue(v any) any {
	switch x := v.(type) {
	case complex64:
		return strconv.FormatComplex(complex128(x), 'g', -1, 64)
	case complex128:
		return strconv.FormatComplex(x, 'g', -1, 128)
	case interface{ Text() string }:
		return x.Text()
	default:
		return v
	}
}
