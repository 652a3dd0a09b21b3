package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/esimov/ascii-balls/detector"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 8
)

// Spawner creates a burst of balls around a world position.
type Spawner interface {
	Burst(x, y float64) int
}

// Resetter clears the simulation.
type Resetter interface {
	Reset()
}

// FaceDetector finds faces in a webcam frame.
type FaceDetector interface {
	Detect(img image.Image) []detector.Face
}

var errWorldUnknown = errors.New("no frame published yet")

// HttpParams defines where and what the server serves.
type HttpParams struct {
	Address string
	Prefix  string
	Root    string
}

// Server exposes the simulation to browsers: a websocket frame stream and a small control API.
type Server struct {
	params   HttpParams
	hub      *Hub
	spawner  Spawner
	resetter Resetter
	detector FaceDetector
	mirror   bool
	started  time.Time

	router *gin.Engine
	srv    *http.Server
}

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewServer wires the routes. The detector is optional: without it webcam frames are ignored.
func NewServer(p HttpParams, hub *Hub, sp Spawner, rs Resetter, det FaceDetector, mirror bool) (*Server, error) {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return nil, err
	}
	p.Root = root

	s := &Server{
		params:   p,
		hub:      hub,
		spawner:  sp,
		resetter: rs,
		detector: det,
		mirror:   mirror,
		started:  time.Now(),
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", s.health)
		v1.GET("/stats", s.stats)
		v1.POST("/spawn", s.spawn)
		v1.POST("/reset", s.reset)
	}
	router.GET("/ws", s.wsEndpoint)

	files := http.StripPrefix(s.params.Prefix, http.FileServer(http.Dir(s.params.Root)))
	router.NoRoute(gin.WrapH(files))
	return router
}

func requestLogger(c *gin.Context) {
	log.Print("[HTTP] " + c.Request.RemoteAddr + " " + c.Request.Method + " " + c.Request.URL.String())
	c.Next()
}

// Run serves until ctx is cancelled, then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    s.params.Address,
		Handler: s.router,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[HTTP] serving %s as %s on %s", s.params.Root, s.params.Prefix, s.params.Address)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ascii-balls",
		"uptime":  time.Since(s.started).String(),
	})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Stats())
}

type spawnRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

func (s *Server) spawn(c *gin.Context) {
	var req spawnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n := s.spawner.Burst(*req.X, *req.Y)
	c.JSON(http.StatusAccepted, gin.H{"spawned": n})
}

func (s *Server) reset(c *gin.Context) {
	s.resetter.Reset()
	c.JSON(http.StatusAccepted, gin.H{"status": "reset queued"})
}

// wsEndpoint defines the websocket connection endpoint
func (s *Server) wsEndpoint(c *gin.Context) {
	// Upgrade the http connection to a WebSocket connection
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.Printf("[WS] upgrade error: %v", err)
		}
		return
	}

	cl := &client{
		conn: conn,
		addr: conn.RemoteAddr().String(),
		send: make(chan []byte, sendBuffer),
	}
	s.hub.register(cl)

	go cl.writePump()
	go s.readPump(cl)
}

type controlMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// readPump listen for new messages being sent to the websocket
func (s *Server) readPump(cl *client) {
	defer func() {
		s.hub.unregister(cl)
		cl.conn.Close()
	}()

	for {
		messageType, msg, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] read error from %s: %v", cl.addr, err)
			}
			return
		}

		switch messageType {
		case websocket.TextMessage:
			s.handleControl(cl, msg)
		case websocket.BinaryMessage:
			s.handleWebcam(cl, msg)
		}
	}
}

func (s *Server) handleControl(cl *client, msg []byte) {
	var m controlMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		cl.sendError("invalid message")
		return
	}
	switch m.Type {
	case "spawn":
		s.spawner.Burst(m.X, m.Y)
	case "reset":
		s.resetter.Reset()
	default:
		cl.sendError("unknown message type " + m.Type)
	}
}

// handleWebcam drops a burst of balls on every face found in the frame.
func (s *Server) handleWebcam(cl *client, msg []byte) {
	if s.detector == nil {
		cl.sendError("webcam spawning is disabled")
		return
	}
	img, _, err := image.Decode(bytes.NewReader(msg))
	if err != nil {
		cl.sendError("cannot decode webcam frame")
		return
	}

	n, err := s.spawnOnFaces(img)
	if err != nil {
		cl.sendError(err.Error())
		return
	}
	if n > 0 {
		log.Printf("[FACE] %d face(s) in frame from %s", n, cl.addr)
	}
}

// spawnOnFaces bursts once per detected face and returns the number of faces.
// Faces can only be placed once the world size is known from a published frame.
func (s *Server) spawnOnFaces(img image.Image) (int, error) {
	st := s.hub.Stats()
	if st.Width <= 0 || st.Height <= 0 {
		return 0, errWorldUnknown
	}

	b := img.Bounds()
	faces := s.detector.Detect(img)
	for _, f := range faces {
		x, y := detector.ToWorld(f, b.Dx(), b.Dy(), st.Width, st.Height, s.mirror)
		s.spawner.Burst(x, y)
	}
	return len(faces), nil
}
