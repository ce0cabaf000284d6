package javalexer

// Packed frame layout: bit 0 marks a text block template, the brace depth
// lives from bit 16 upwards. A packed value of 0 is the default state.
const (
	textBlockFlag = 1
	depthShift    = 16
)

// frame tracks one open template fragment.
type frame struct {
	textBlock bool
	depth     int
}

func (f frame) pack() int {
	state := f.depth << depthShift
	if f.textBlock {
		state |= textBlockFlag
	}
	return state
}

func (f frame) isDefault() bool {
	return f.depth == 0 && !f.textBlock
}

func unpackFrame(state int) frame {
	if state < 0 {
		return frame{}
	}
	return frame{
		textBlock: state&textBlockFlag != 0,
		depth:     state >> depthShift,
	}
}

// PackState builds the opaque state for a lexer positioned inside a template
// fragment of the given brace depth.
func PackState(textBlock bool, depth int) int {
	return frame{textBlock: textBlock, depth: depth}.pack()
}

// UnpackState is the inverse of PackState.
func UnpackState(state int) (bool, int) {
	f := unpackFrame(state)
	return f.textBlock, f.depth
}

// stateStack is never empty while a scan is active.
type stateStack struct {
	frames []frame
}

func (s *stateStack) reset(state int) {
	s.frames = append(s.frames[:0], unpackFrame(state))
}

func (s *stateStack) resetPacked(packed []int) {
	s.frames = s.frames[:0]
	for _, state := range packed {
		s.frames = append(s.frames, unpackFrame(state))
	}
	if len(s.frames) == 0 {
		s.frames = append(s.frames, frame{})
	}
}

func (s *stateStack) top() *frame {
	return &s.frames[len(s.frames)-1]
}

func (s *stateStack) push(f frame) {
	s.frames = append(s.frames, f)
}

// pop removes the top frame. An underflow leaves the default frame behind.
func (s *stateStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
	if len(s.frames) == 0 {
		s.frames = append(s.frames, frame{})
	}
}

func (s *stateStack) packInto(dst []int) []int {
	dst = dst[:0]
	for _, f := range s.frames {
		dst = append(dst, f.pack())
	}
	return dst
}
