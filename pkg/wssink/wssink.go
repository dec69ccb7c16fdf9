// Package wssink forwards DeepSearch events to a host UI over a websocket.
package wssink

import (
	"context"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ayylmaonade/deepsearch-go/pkg/deepsearch"
)

// Sink delivers events as JSON text messages over a single websocket
// connection. It implements deepsearch.Sink. Events are emitted one at a
// time by the client, so no extra synchronization is needed here.
type Sink struct {
	conn *websocket.Conn
}

// Dial connects to the given websocket URL and returns a sink bound to the
// connection. The caller owns the sink and must Close it when the call is
// finished.
func Dial(ctx context.Context, url string) (*Sink, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Sink{conn: conn}, nil
}

// Emit writes one event to the connection.
func (s *Sink) Emit(ctx context.Context, evt deepsearch.Event) error {
	return wsjson.Write(ctx, s.conn, evt)
}

// Close closes the underlying connection normally.
func (s *Sink) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "")
}
