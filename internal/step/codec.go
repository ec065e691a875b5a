package step

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownAction = errors.New("step: unknown action")
	ErrNilStep       = errors.New("step: nil step")
)

// Marshal encodes s as a flat JSON object with an "action" discriminant.
// Keys are sorted so identical steps always encode to identical bytes.
func Marshal(s Step) ([]byte, error) {
	if s == nil {
		return nil, ErrNilStep
	}
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", s.Action(), err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", s.Action(), err)
	}
	action, _ := json.Marshal(s.Action())
	fields["action"] = action
	return json.Marshal(fields)
}

// Unmarshal decodes an object produced by Marshal back into its variant.
func Unmarshal(data []byte) (Step, error) {
	var head struct {
		Action Action `json:"action"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Action {
	case ActionCompare:
		return decode[Compare](data)
	case ActionSwap:
		return decode[Swap](data)
	case ActionSelect:
		return decode[Select](data)
	case ActionShift:
		return decode[Shift](data)
	case ActionInsert:
		return decode[Insert](data)
	case ActionSplit:
		return decode[Split](data)
	case ActionMergeStep:
		return decode[MergeStep](data)
	case ActionMergeComplete:
		return decode[MergeComplete](data)
	case ActionSelectPivot:
		return decode[SelectPivot](data)
	case ActionPlacePivot:
		return decode[PlacePivot](data)
	case ActionExtractMax:
		return decode[ExtractMax](data)
	case ActionHeapifyDone:
		return decode[HeapifyDone](data)
	case ActionInit:
		return decode[Init](data)
	case ActionSelectMid:
		return decode[SelectMid](data)
	case ActionSearchLeft:
		return decode[SearchLeft](data)
	case ActionSearchRight:
		return decode[SearchRight](data)
	case ActionFound:
		return decode[Found](data)
	case ActionNotFound:
		return decode[NotFound](data)
	case ActionDone:
		return decode[Done](data)
	case ActionCounting:
		return decode[Counting](data)
	case ActionCumulative:
		return decode[Cumulative](data)
	case ActionOutput:
		return decode[Output](data)
	case ActionError:
		return decode[Error](data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, head.Action)
}

func decode[T Step](data []byte) (Step, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Record wraps a Step so it can sit inside larger JSON documents.
type Record struct {
	Step Step
}

func (r Record) MarshalJSON() ([]byte, error) { return Marshal(r.Step) }

func (r *Record) UnmarshalJSON(data []byte) error {
	s, err := Unmarshal(data)
	if err != nil {
		return err
	}
	r.Step = s
	return nil
}
