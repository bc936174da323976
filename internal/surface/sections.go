package surface

// Sections is a SectionGeometry with a shared base size and sparse
// per-section overrides.
type Sections struct {
	base      int
	count     int
	overrides map[int]int
}

// NewSections returns count sections of size base.
func NewSections(count, base int) *Sections {
	return &Sections{base: max(0, base), count: max(0, count), overrides: make(map[int]int)}
}

func (s *Sections) Count() int { return s.count }

// SetCount changes the number of sections. Overrides beyond the new count
// are dropped.
func (s *Sections) SetCount(n int) {
	s.count = max(0, n)
	for i := range s.overrides {
		if i >= s.count {
			delete(s.overrides, i)
		}
	}
}

// BaseSize is the size of sections without an override.
func (s *Sections) BaseSize() int { return s.base }

// SetBaseSize changes the default section size.
func (s *Sections) SetBaseSize(size int) { s.base = max(0, size) }

func (s *Sections) Length() int {
	n := s.base * s.count
	for _, size := range s.overrides {
		n += size - s.base
	}
	return n
}

func (s *Sections) SizeOf(i int) int {
	if i < 0 || i >= s.count {
		return -1
	}
	if size, ok := s.overrides[i]; ok {
		return size
	}
	return s.base
}

func (s *Sections) OffsetOf(i int) int {
	if i < 0 || i >= s.count {
		return -1
	}
	off := s.base * i
	for j, size := range s.overrides {
		if j < i {
			off += size - s.base
		}
	}
	return off
}

func (s *Sections) IndexOf(offset int) int {
	if offset < 0 || offset >= s.Length() {
		return -1
	}
	if len(s.overrides) == 0 {
		if s.base == 0 {
			return -1
		}
		return offset / s.base
	}
	pos := 0
	for i := 0; i < s.count; i++ {
		size := s.SizeOf(i)
		if offset < pos+size {
			return i
		}
		pos += size
	}
	return -1
}

func (s *Sections) Resize(i, size int) {
	if i < 0 || i >= s.count {
		return
	}
	size = max(0, size)
	if size == s.base {
		delete(s.overrides, i)
		return
	}
	s.overrides[i] = size
}

// Reset drops all overrides.
func (s *Sections) Reset() {
	s.overrides = make(map[int]int)
}
