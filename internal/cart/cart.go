package cart

// Line is one product selection in a session cart. The name and unit price
// are snapshots taken when the line was first added; later catalog price
// changes never affect an existing line.
type Line struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Store owns the quantity invariants for a single user's cart: at most one
// line per product, quantity always >= 1, a line hitting zero is removed.
// Insertion order is preserved.
type Store struct {
	lines []Line
}

func NewStore(lines []Line) *Store {
	s := &Store{lines: make([]Line, len(lines))}
	copy(s.lines, lines)
	return s
}

// AddLine increments an existing line for the product or inserts a fresh one
// with quantity 1, snapshotting name and price at this moment.
func (s *Store) AddLine(productID int64, name string, price float64) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			return
		}
	}
	s.lines = append(s.lines, Line{ProductID: productID, Name: name, UnitPrice: price, Quantity: 1})
}

// RemoveLine decrements the matching line, deleting it when the quantity
// reaches zero. Unknown products are a no-op.
func (s *Store) RemoveLine(productID int64) {
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity > 1 {
			s.lines[i].Quantity--
			return
		}
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		return
	}
}

// Total is recomputed on every call; nothing is cached between mutations.
func (s *Store) Total() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

func (s *Store) ItemCount() int {
	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) Empty() bool {
	return len(s.lines) == 0
}

func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy so callers cannot bypass the mutation invariants.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}
