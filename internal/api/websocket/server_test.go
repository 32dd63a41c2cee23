package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthReportsClientCount(t *testing.T) {
	s := &Server{hub: NewHub()}
	go s.hub.Run()

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/ws/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string `json:"status"`
		Clients int    `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.Equal(t, 0, body.Clients)
}

func TestProgressBroadcastReachesClient(t *testing.T) {
	s := &Server{hub: NewHub()}
	go s.hub.Run()

	ts := httptest.NewServer(http.HandlerFunc(s.handleProgress))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := gws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration races the broadcast, wait until the hub sees the client.
	for i := 0; i < 100 && s.hub.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, s.hub.ClientCount())

	s.BroadcastProgress([]byte(`{"events":1}`))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, `{"events":1}`, string(msg))
}
