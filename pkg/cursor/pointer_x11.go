//go:build linux

package cursor

import (
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type x11Query struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewQuery() Query {
	conn, err := xgb.NewConn()
	if err != nil {
		return nullQuery{}
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	return &x11Query{conn: conn, root: screen.Root}
}

func (q *x11Query) Position() (image.Point, bool) {
	reply, err := xproto.QueryPointer(q.conn, q.root).Reply()
	if err != nil {
		return image.Point{}, false
	}
	return image.Pt(int(reply.RootX), int(reply.RootY)), true
}

func (q *x11Query) Close() error {
	q.conn.Close()
	return nil
}
