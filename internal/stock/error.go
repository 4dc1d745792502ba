package stock

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyCart = errors.New("cart is empty")

// Shortage is one line whose requested quantity exceeds available stock.
type Shortage struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

func (s Shortage) String() string {
	label := s.Name
	if label == "" {
		label = fmt.Sprintf("product %d", s.ProductID)
	}
	return fmt.Sprintf("insufficient stock for %s (requested %d, available %d)", label, s.Requested, s.Available)
}

// Error reports every shortage found in a single check.
type Error struct {
	Shortages []Shortage
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		msgs = append(msgs, s.String())
	}
	return strings.Join(msgs, "; ")
}
