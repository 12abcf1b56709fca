package live

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastTCP(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	defer client.Close()

	hub.Add(server)
	assert.Equal(t, 1, hub.Count())

	go hub.BroadcastJSON(WatchlistUpdate("u-1", 42, "watching"))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := bufio.NewReader(client).ReadString('\n')
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(line), &ev))
	assert.Equal(t, "watchlist.update", ev.Type)
	assert.Equal(t, 42, ev.TitleID)
}

func TestHubRemove(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	defer client.Close()

	hub.Add(server)
	hub.Remove(server)
	assert.Equal(t, 0, hub.Count())

	// broadcasting with no clients must not block or panic
	hub.BroadcastJSON(CatalogLoaded(100))
}

func TestHubDropsDeadConnections(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()

	hub.Add(server)
	client.Close()
	server.Close()

	hub.BroadcastJSON(CatalogLoaded(1))
	assert.Equal(t, 0, hub.Count())
}

func TestHubStats(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	defer client.Close()
	defer server.Close()

	hub.Add(server)
	stats := hub.Stats()
	assert.Equal(t, 1, stats.TCPClients)
	assert.Equal(t, 0, stats.WSClients)
}

func TestHubWelcome(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go hub.Welcome(server)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	line, err := bufio.NewReader(client).ReadString('\n')
	require.NoError(t, err)

	var msg map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &msg))
	assert.Equal(t, "welcome", msg["type"])
}
