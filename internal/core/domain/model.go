package domain

import "strconv"

type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
}

// Room returns the key under which per-channel configuration is stored.
func (m *Message) Room() string {
	return strconv.FormatInt(m.ChatID, 10)
}

type Action string

const (
	Typing Action = "typing"
)

// EndpointConfig describes where to fetch what-is-where data for a room.
type EndpointConfig struct {
	Room     string
	Format   Format
	URL      string
	APIToken string
}
