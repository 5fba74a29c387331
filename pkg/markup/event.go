package markup

// EventType names a pointer interaction.
type EventType string

// Supported event types.
const (
	MouseEnter EventType = "mouseenter"
	MouseMove  EventType = "mousemove"
	MouseLeave EventType = "mouseleave"
	Click      EventType = "click"
)

// Event describes a pointer interaction delivered to an element.
// X and Y are relative to the chart's outer box.
type Event struct {
	Type     EventType
	TargetID string
	X, Y     float64
}

// Handlers maps event types to callbacks attached to an element.
type Handlers map[EventType]func(Event)

// On registers fn for t, creating the map if needed. A nil fn is ignored.
func (n *Node) On(t EventType, fn func(Event)) *Node {
	if fn == nil {
		return n
	}
	if n.Handlers == nil {
		n.Handlers = make(Handlers)
	}
	n.Handlers[t] = fn
	return n
}

// Interactive reports whether n has any handler attached.
func (n *Node) Interactive() bool { return len(n.Handlers) > 0 }

// Dispatch delivers e to the element in root whose id equals id.
// It reports whether a handler ran. Unknown ids and elements without a
// handler for e.Type are ignored.
func Dispatch(root *Node, id string, e Event) bool {
	target := root.FindByID(id)
	if target == nil {
		return false
	}
	fn, ok := target.Handlers[e.Type]
	if !ok {
		return false
	}
	e.TargetID = id
	fn(e)
	return true
}
