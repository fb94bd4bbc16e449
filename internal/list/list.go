// Package list implements the intrusive doubly-linked list every policy
// threads its Nodes through, generalized to operate on the shared node.Node
// type instead of being embedded directly in a shard.
//
// There is no sentinel node: head/tail are nil on an empty list. Prev points
// toward the head, Next points toward the tail — "front" is whichever end a
// policy treats as most-recently-used or most-recently-inserted; the list
// itself is agnostic to that meaning.
package list

import "github.com/gopherlru/evictcache/internal/node"

// List is a non-owning view over a run of Nodes. Node storage belongs to a
// pool.Pool; the list only manages Prev/Next links and head/tail/length
// bookkeeping. Not safe for concurrent use.
type List[K comparable, V any, M any] struct {
	head, tail *node.Node[K, V, M]
	n          int
}

// Len returns the number of nodes currently linked.
func (l *List[K, V, M]) Len() int { return l.n }

// Front returns the head node, or nil if the list is empty.
func (l *List[K, V, M]) Front() *node.Node[K, V, M] { return l.head }

// Back returns the tail node, or nil if the list is empty.
func (l *List[K, V, M]) Back() *node.Node[K, V, M] { return l.tail }

// Prepend links n at the head.
func (l *List[K, V, M]) Prepend(n *node.Node[K, V, M]) {
	n.Prev = nil
	n.Next = l.head
	if l.head != nil {
		l.head.Prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.n++
}

// Append links n at the tail.
func (l *List[K, V, M]) Append(n *node.Node[K, V, M]) {
	n.Next = nil
	n.Prev = l.tail
	if l.tail != nil {
		l.tail.Next = n
	}
	l.tail = n
	if l.head == nil {
		l.head = n
	}
	l.n++
}

// Remove unlinks n from the list. n must currently belong to l; the caller
// (a policy engine) is responsible for tracking list membership.
func (l *List[K, V, M]) Remove(n *node.Node[K, V, M]) {
	if n.Prev != nil {
		n.Prev.Next = n.Next
	} else {
		l.head = n.Next
	}
	if n.Next != nil {
		n.Next.Prev = n.Prev
	} else {
		l.tail = n.Prev
	}
	n.Prev, n.Next = nil, nil
	l.n--
}

// MoveToBack relinks n at the tail. No-op if n is already the tail.
func (l *List[K, V, M]) MoveToBack(n *node.Node[K, V, M]) {
	if l.tail == n {
		return
	}
	l.Remove(n)
	l.Append(n)
}

// MoveToFront relinks n at the head. No-op if n is already the head.
func (l *List[K, V, M]) MoveToFront(n *node.Node[K, V, M]) {
	if l.head == n {
		return
	}
	l.Remove(n)
	l.Prepend(n)
}

// PopFront unlinks and returns the head node, or nil if the list is empty.
func (l *List[K, V, M]) PopFront() *node.Node[K, V, M] {
	n := l.head
	if n != nil {
		l.Remove(n)
	}
	return n
}

// PopBack unlinks and returns the tail node, or nil if the list is empty.
func (l *List[K, V, M]) PopBack() *node.Node[K, V, M] {
	n := l.tail
	if n != nil {
		l.Remove(n)
	}
	return n
}

// Clear drops every link. Nodes are not released to any pool; the caller
// owns that decision.
func (l *List[K, V, M]) Clear() {
	for n := l.head; n != nil; {
		next := n.Next
		n.Prev, n.Next = nil, nil
		n = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}
