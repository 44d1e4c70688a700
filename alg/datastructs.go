package alg

// StackArray is a stack of integer indices backed by a slice.
// Index 0 is the top of the stack.
type StackArray struct {
	Array []int
}

func (s *StackArray) Push(val int) {
	s.Array = append(s.Array, val)
}

func (s *StackArray) Pop() (int, bool) {
	if s.Size() == 0 {
		return 0, false
	}
	retval := s.Array[len(s.Array)-1]
	s.Array = s.Array[:len(s.Array)-1]
	return retval, true
}

func (s *StackArray) Index(index int) (int, bool) {
	if index < 0 || index >= s.Size() {
		return 0, false
	}
	return s.Array[len(s.Array)-1-index], true
}

func (s *StackArray) Peek() (int, bool) {
	return s.Index(0)
}

func (s *StackArray) Size() int {
	return len(s.Array)
}

// Contains reports whether val is anywhere on the stack, skipping the
// topmost skipTop elements.
func (s *StackArray) Contains(val int, skipTop int) bool {
	for i := len(s.Array) - 1 - skipTop; i >= 0; i-- {
		if s.Array[i] == val {
			return true
		}
	}
	return false
}

func NewStackArray(size int) *StackArray {
	return &StackArray{make([]int, 0, size)}
}
