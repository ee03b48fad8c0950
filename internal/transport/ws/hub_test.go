package ws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclass/class-service/internal/service"
)

type fakeConn struct {
	id   string
	sent []service.Event
}

func (c *fakeConn) ID() string { return c.id }
func (c *fakeConn) Send(ev service.Event) error {
	c.sent = append(c.sent, ev)
	return nil
}
func (c *fakeConn) Close() error { return nil }

func TestHub_UnicastAndMulticast(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	hub.Add(a)
	hub.Add(b)
	req.Equal(2, hub.Len())

	hub.Unicast("a", service.Event{Type: "x"})
	req.Len(a.sent, 1)
	req.Empty(b.sent)

	hub.Multicast([]string{"a", "b"}, service.Event{Type: "y"})
	req.Len(a.sent, 2)
	req.Len(b.sent, 1)
}

func TestHub_UnknownTargetsIgnored(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	a := &fakeConn{id: "a"}
	hub.Add(a)

	// Delivery is best-effort: absent ids are skipped, never an error
	hub.Unicast("ghost", service.Event{Type: "x"})
	hub.Multicast([]string{"ghost", "a"}, service.Event{Type: "y"})
	req.Len(a.sent, 1)
}

func TestHub_RemoveStopsDelivery(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	a := &fakeConn{id: "a"}
	hub.Add(a)
	hub.Remove("a")

	hub.Unicast("a", service.Event{Type: "x"})
	req.Empty(a.sent)
	req.Zero(hub.Len())
}
