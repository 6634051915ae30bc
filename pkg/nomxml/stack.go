package nomxml

// openElement is an element whose begin tag has been parsed and whose Close
// has not been produced yet.
type openElement struct {
	open  Open
	text  Text
	close Close
}

// elementStack holds the open elements, innermost last.
type elementStack struct {
	elems []openElement
}

func (s *elementStack) push(open Open) {
	s.elems = append(s.elems, openElement{open: open})
}

// top returns the innermost open element, or nil when none is open.
func (s *elementStack) top() *openElement {
	if len(s.elems) == 0 {
		return nil
	}
	return &s.elems[len(s.elems)-1]
}

// pop removes the innermost element and fills in its Close.
// It must not be called on an empty stack.
func (s *elementStack) pop() openElement {
	last := len(s.elems) - 1
	elem := s.elems[last]
	s.elems[last] = openElement{}
	s.elems = s.elems[:last]

	elem.close = Close{Name: elem.open.Name}
	return elem
}

func (s *elementStack) len() int {
	return len(s.elems)
}

// names returns the open element names, outermost first.
func (s *elementStack) names() []string {
	names := make([]string, len(s.elems))
	for idx := range s.elems {
		names[idx] = s.elems[idx].open.Name
	}
	return names
}

func (s *elementStack) reset() {
	clear(s.elems)
	s.elems = s.elems[:0]
}
