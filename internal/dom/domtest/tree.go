// Package domtest предоставляет дерево элементов в памяти для тестов публикатора.
// Узлы появляются по виртуальным часам, а обработчики срабатывают только на пару
// mousedown + click, как у фреймворка консоли.
package domtest

import (
	"slices"
	"sync"
	"time"

	"draftPublisher/internal/dom"
)

const (
	EventClick    = "click"
	EventActivate = "activate"
)

// Event: запись о событии, доставленном в узел.
type Event struct {
	At   time.Duration
	Node string
	Type string
}

type Tree struct {
	clock *Clock
	root  *Node

	mu     sync.Mutex
	events []Event
	probes int
}

func NewTree(clock *Clock) *Tree {
	t := &Tree{clock: clock}
	t.root = &Node{tree: t, Name: "document"}
	return t
}

// Root возвращает корень документа.
func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) Clock() *Clock {
	return t.clock
}

// Events возвращает копию журнала событий.
func (t *Tree) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.events)
}

// EventsOf фильтрует журнал по типу события.
func (t *Tree) EventsOf(eventType string) []Event {
	var out []Event
	for _, e := range t.Events() {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Probes возвращает количество выполненных запросов QuerySelector.
func (t *Tree) Probes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.probes
}

func (t *Tree) record(node, eventType string) {
	t.mu.Lock()
	t.events = append(t.events, Event{At: t.clock.Elapsed(), Node: node, Type: eventType})
	t.mu.Unlock()
}

func (t *Tree) probe() {
	t.mu.Lock()
	t.probes++
	t.mu.Unlock()
}

// Node: узел дерева. Реализует dom.Element.
type Node struct {
	tree      *Tree
	Name      string
	selectors []string
	parent    *Node
	children  []*Node
	appearAt  time.Duration
	removed   bool
	armed     bool
	handler   func(n *Node)
}

// Add добавляет дочерний узел, видимый сразу.
func (n *Node) Add(name string, selectors ...string) *Node {
	return n.AddAt(n.tree.clock.Elapsed(), name, selectors...)
}

// AddAt добавляет дочерний узел, который появится в момент at от старта часов.
func (n *Node) AddAt(at time.Duration, name string, selectors ...string) *Node {
	child := &Node{
		tree:      n.tree,
		Name:      name,
		selectors: selectors,
		parent:    n,
		appearAt:  at,
	}
	n.children = append(n.children, child)
	return child
}

// OnActivate задает обработчик активации (mousedown, затем click).
func (n *Node) OnActivate(fn func(n *Node)) *Node {
	n.handler = fn
	return n
}

// Remove отсоединяет узел от дерева.
func (n *Node) Remove() {
	n.removed = true
}

func (n *Node) Visible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.removed || cur.tree.clock.Elapsed() < cur.appearAt {
			return false
		}
	}
	return true
}

func (n *Node) matches(selector string) bool {
	return slices.Contains(n.selectors, selector)
}

func (n *Node) walk(selector string, visit func(*Node) bool) bool {
	for _, child := range n.children {
		if !child.Visible() {
			continue
		}
		if child.matches(selector) && !visit(child) {
			return false
		}
		if !child.walk(selector, visit) {
			return false
		}
	}
	return true
}

func (n *Node) QuerySelector(selector string) (dom.Element, error) {
	n.tree.probe()
	var found *Node
	n.walk(selector, func(m *Node) bool {
		found = m
		return false
	})
	if found == nil {
		return nil, nil
	}
	return found, nil
}

func (n *Node) QuerySelectorAll(selector string) ([]dom.Element, error) {
	var out []dom.Element
	n.walk(selector, func(m *Node) bool {
		out = append(out, m)
		return true
	})
	return out, nil
}

func (n *Node) DispatchEvent(eventType string, init map[string]any) error {
	n.tree.record(n.Name, eventType)
	if eventType == dom.EventMouseDown && n.Visible() {
		n.armed = true
	}
	return nil
}

func (n *Node) Click() error {
	n.tree.record(n.Name, EventClick)
	armed := n.armed
	n.armed = false
	if !armed || !n.Visible() || n.handler == nil {
		return nil
	}
	n.tree.record(n.Name, EventActivate)
	n.handler(n)
	return nil
}
