package sim

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Frame is one recorded tick of input.
type Frame struct {
	DT     float64
	Intent core.Intent
}

// Replay feeds frames to the session until they run out or the run ends,
// and returns the last snapshot. A session on its start screen is started first.
func Replay(s *Session, frames []Frame) Snapshot {
	if s.State() == StateStart {
		s.Start()
	}
	snap := s.Snapshot()
	for _, f := range frames {
		if snap.State.Terminal() {
			break
		}
		snap = s.Tick(f.DT, f.Intent)
	}
	return snap
}

// ErrBadScript is returned for unusable input scripts.
var ErrBadScript = errors.New("bad input script")

// Script is the YAML form of a frame sequence:
//
//	frames:
//	  - {dt: 0.016, right: true, repeat: 120}
//	  - {dt: 0.016, right: true, jump: true}
type Script struct {
	Frames []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is a frame that may repeat.
type ScriptFrame struct {
	DT     float64 `yaml:"dt"`
	Left   bool    `yaml:"left"`
	Right  bool    `yaml:"right"`
	Jump   bool    `yaml:"jump"`
	Repeat int     `yaml:"repeat"` // 0 or 1 means once
}

// ParseScript decodes a YAML script and expands repeats.
// A frame without dt uses defaultDT.
func ParseScript(data []byte, defaultDT float64) ([]Frame, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}

	var frames []Frame
	for i, sf := range sc.Frames {
		if sf.Repeat < 0 {
			return nil, fmt.Errorf("%w: frame %d has negative repeat", ErrBadScript, i)
		}
		dt := sf.DT
		if dt == 0 {
			dt = defaultDT
		}
		if dt < 0 {
			return nil, fmt.Errorf("%w: frame %d has negative dt", ErrBadScript, i)
		}
		n := sf.Repeat
		if n == 0 {
			n = 1
		}
		f := Frame{DT: dt, Intent: core.Intent{MoveLeft: sf.Left, MoveRight: sf.Right, Jump: sf.Jump}}
		for j := 0; j < n; j++ {
			frames = append(frames, f)
		}
	}
	return frames, nil
}
