package com

import "github.com/rs/xid"

type Uid struct {
	xid.ID
}

func NewUid() Uid { return Uid{xid.New()} }

// Short is a truncated log-friendly form of the id.
func (u Uid) Short() string { return u.String()[:3] + "." + u.String()[len(u.String())-3:] }
