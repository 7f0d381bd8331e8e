package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"transistor_bench/internal/models"
	"transistor_bench/internal/service"
	"transistor_bench/internal/simulation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws/analysis"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func wsTestServer(s *service.Service) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws/analysis", h.wsAnalysis)
	return httptest.NewServer(r)
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func TestWebSocket_PointsThenResult(t *testing.T) {
	an := &mockAnalyzer{result: sampleResult(), points: samplePoints()}
	srv := wsTestServer(&service.Service{Analyzer: an})
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(analysisBody)); err != nil {
		t.Fatalf("write params: %v", err)
	}

	var (
		points []models.LiveDataPoint
		result models.SimulationResult
		got    bool
	)
	for !got {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read (have %d points): %v", len(points), err)
		}
		switch env.Type {
		case "point":
			var p models.LiveDataPoint
			if err := json.Unmarshal(env.Data, &p); err != nil {
				t.Fatalf("unmarshal point: %v", err)
			}
			points = append(points, p)
		case "result":
			if err := json.Unmarshal(env.Data, &result); err != nil {
				t.Fatalf("unmarshal result: %v", err)
			}
			got = true
		default:
			t.Fatalf("unexpected envelope: %+v", env)
		}
	}

	if len(points) != len(samplePoints()) {
		t.Fatalf("got %d points, want %d", len(points), len(samplePoints()))
	}
	for i, p := range samplePoints() {
		if points[i].Current != p.Current {
			t.Fatalf("point %d out of order: got %.2fA, want %.2fA", i, points[i].Current, p.Current)
		}
	}
	if result.Status != models.StatusSafe || result.MaxSafeCurrent != 49 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// Server closes after the result envelope.
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(new(json.RawMessage)); err == nil {
		t.Fatalf("expected connection close after result")
	}
}

func TestWebSocket_ConfigErrorEnvelope(t *testing.T) {
	an := &mockAnalyzer{err: simulation.ErrInvalidPrecision}
	srv := wsTestServer(&service.Service{Analyzer: an})
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(analysisBody)); err != nil {
		t.Fatalf("write params: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != "error" || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}

func TestWebSocket_MalformedParams(t *testing.T) {
	srv := wsTestServer(&service.Service{Analyzer: &mockAnalyzer{}})
	defer srv.Close()

	conn := dialWS(t, srv)
	defer conn.Close()

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"maxCurrent":`)); err != nil {
		t.Fatalf("write params: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	if env.Type != "error" {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}
