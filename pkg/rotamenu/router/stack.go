package router

import "errors"

// ErrStackFull is returned by Push when the stack is at its maximum depth.
var ErrStackFull = errors.New("router: page stack full")

// StackEntry is a page that was left by navigating forward, and the state
// needed to put the cursor back where it was.
type StackEntry struct {
	Page   string
	Resume Resume
}

// Resume is the cursor position on a page.
type Resume struct {
	Focus  int   // index of the focused item among the selectable ones
	Offset int16 // vertical scroll offset in pixels
}

// Stack manages navigation history for back navigation.
// Its depth is bounded; nothing grows past maxDepth entries.
type Stack struct {
	entries  []StackEntry
	maxDepth int
}

// NewStack creates an empty stack holding at most maxDepth entries.
// A maxDepth below 1 is treated as 1.
func NewStack(maxDepth int) *Stack {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &Stack{
		entries:  make([]StackEntry, 0, maxDepth),
		maxDepth: maxDepth,
	}
}

// Push adds a new entry to the stack.
// Called when navigating forward to a new page.
func (s *Stack) Push(page string, resume Resume) error {
	if len(s.entries) == s.maxDepth {
		return ErrStackFull
	}
	s.entries = append(s.entries, StackEntry{Page: page, Resume: resume})
	return nil
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// Peek returns the top entry without removing it.
// Returns nil if the stack is empty.
func (s *Stack) Peek() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1]
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
