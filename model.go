package resourceful

import (
	"bytes"
	"encoding/json"
)

// ModelFactory allocates a fresh model instance. It must return a pointer so
// the raw payload can be decoded onto it.
type ModelFactory func() any

// AfterLoader is implemented by models that post-process themselves after
// being decoded from a response. It runs once per instantiated model, before
// the caller observes the result. An error rejects the whole call.
type AfterLoader interface {
	AfterLoad() error
}

// BeforeSaver is implemented by models that prepare themselves before being
// sent as a write payload. It runs on the defensive copy, never on the
// caller's value. An error rejects the call before any request is made.
type BeforeSaver interface {
	BeforeSave() error
}

// instantiate allocates a model, copies the raw payload onto it, and runs
// the AfterLoad hook if present.
func instantiate(factory ModelFactory, raw json.RawMessage) (any, error) {
	inst := factory()
	if err := json.Unmarshal(raw, inst); err != nil {
		return nil, Errorf(CodeInvalidPayload, "decode into model: %v", err)
	}
	if al, ok := inst.(AfterLoader); ok {
		if err := al.AfterLoad(); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// decodeWithModel turns a raw response payload into one model instance, or
// one per element when the payload is a JSON array. Element order is
// preserved.
func decodeWithModel(factory ModelFactory, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if isJSONArray(raw) {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, Errorf(CodeInvalidPayload, "decode array payload: %v", err)
		}
		out := make([]any, 0, len(elems))
		for _, elem := range elems {
			inst, err := instantiate(factory, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, inst)
		}
		return out, nil
	}
	return instantiate(factory, raw)
}

// copyForSave deep-copies a write payload via a JSON round-trip and runs the
// BeforeSave hook on the copy. The caller's value is never touched. With a
// factory set, the copy is a typed model instance; otherwise it is a plain
// decoded value. A nil payload skips the hook and yields a nil body.
func copyForSave(factory ModelFactory, payload any) (any, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, Errorf(CodeInvalidPayload, "encode payload: %v", err)
	}
	var cp any
	if factory != nil {
		cp = factory()
		if err := json.Unmarshal(data, cp); err != nil {
			return nil, Errorf(CodeInvalidPayload, "copy payload into model: %v", err)
		}
	} else {
		if err := json.Unmarshal(data, &cp); err != nil {
			return nil, Errorf(CodeInvalidPayload, "copy payload: %v", err)
		}
	}
	if bs, ok := cp.(BeforeSaver); ok {
		if err := bs.BeforeSave(); err != nil {
			return nil, err
		}
	}
	return cp, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
