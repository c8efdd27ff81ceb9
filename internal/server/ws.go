package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/gesture"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/landmark"
	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/motion"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Browser tracker connects from the consultation page
	},
}

// CaptureHandler accepts a live landmark stream from the browser tracker
// over WebSocket. The client sends one message per tracked frame, then an
// analyze message closing the capture window; the server assembles the
// buffered frames into a MotionSequence and replies with a gesture analysis
// and quality report.
type CaptureHandler struct{}

// NewCaptureHandler creates a new CaptureHandler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{}
}

type captureMessage struct {
	Type             string              `json:"type"` // "frame", "analyze", "reset"
	Frame            *landmark.HandFrame `json:"frame,omitempty"`
	SessionID        string              `json:"sessionId,omitempty"`
	CaptureStartTime int64               `json:"captureStartTime,omitempty"`
	CaptureEndTime   int64               `json:"captureEndTime,omitempty"`
}

type captureReply struct {
	Type     string                `json:"type"` // "analysis", "error"
	Analysis *gesture.Analysis     `json:"analysis,omitempty"`
	Quality  *motion.QualityResult `json:"quality,omitempty"`
	Frames   int                   `json:"frames,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *CaptureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	var frames []landmark.HandFrame

	for {
		var msg captureMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "frame":
			if msg.Frame != nil {
				frames = append(frames, *msg.Frame)
			}
		case "reset":
			frames = nil
		case "analyze":
			h.analyze(conn, &msg, frames)
			frames = nil
		default:
			conn.WriteJSON(captureReply{Type: "error", Error: "unknown message type"})
		}
	}
}

func (h *CaptureHandler) analyze(conn *websocket.Conn, msg *captureMessage, frames []landmark.HandFrame) {
	seq := &landmark.MotionSequence{
		SessionID:        msg.SessionID,
		Frames:           frames,
		CaptureStartTime: msg.CaptureStartTime,
		CaptureEndTime:   msg.CaptureEndTime,
	}
	if err := seq.Validate(); err != nil {
		conn.WriteJSON(captureReply{Type: "error", Error: err.Error(), Frames: len(frames)})
		return
	}

	features, err := motion.Extract(seq)
	if err != nil {
		conn.WriteJSON(captureReply{Type: "error", Error: err.Error(), Frames: len(frames)})
		return
	}

	analysis := gesture.Analyze(seq)
	quality := motion.ValidateQuality(features)
	conn.WriteJSON(captureReply{
		Type:     "analysis",
		Analysis: &analysis,
		Quality:  &quality,
		Frames:   len(frames),
	})
}
