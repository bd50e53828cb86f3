package rotamenu

import "iter"

// Page is one screen of items, kept in the order they were appended.
// That order is both the drawing order and the navigation order.
type Page struct {
	Name string

	head  Item
	tail  Item
	count int
}

func NewPage(name string) *Page {
	return &Page{Name: name}
}

// Append adds item after the last item of the page.
func (p *Page) Append(item Item) {
	if p.tail == nil {
		AppendToList(&p.head, item)
	} else {
		p.tail.base().next = item
	}
	p.tail = item
	p.count++
}

// First returns the first item, or nil for an empty page.
func (p *Page) First() Item { return p.head }

func (p *Page) Len() int { return p.count }

// All iterates the items in order.
func (p *Page) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for item := p.head; item != nil; item = item.Next() {
			if !yield(item) {
				return
			}
		}
	}
}

// Release returns every item to its pool. The page is empty afterwards.
func (p *Page) Release() {
	item := p.head
	for item != nil {
		next := item.Next()
		item.release()
		item = next
	}
	p.head = nil
	p.tail = nil
	p.count = 0
}
