package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-logr/logr"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/TexablePlum/Sort-Algoritms/algo"
	"github.com/TexablePlum/Sort-Algoritms/trace"
	"github.com/TexablePlum/Sort-Algoritms/visual"
)

// WebServer provides the HTTP and websocket control surface: frames and
// status out, control commands in.
type WebServer struct {
	mu          sync.RWMutex
	log         logr.Logger
	latestFrame *VizFrame
	statusFunc  func() RunStatus
	tracer      *trace.Recorder
	commands    chan visual.ControlCommand
	hub         *wsHub
	server      *http.Server
}

// WebServerOptions wire the server to the session.
type WebServerOptions struct {
	Log        logr.Logger
	StatusFunc func() RunStatus
	Tracer     *trace.Recorder
	StaticDir  string
}

// NewWebServer creates a web server bound to addr.
func NewWebServer(addr string, opts WebServerOptions) *WebServer {
	ws := &WebServer{
		log:        opts.Log,
		statusFunc: opts.StatusFunc,
		tracer:     opts.Tracer,
		commands:   make(chan visual.ControlCommand, DefaultCommandBuffer),
	}
	if ws.log.GetSink() == nil {
		ws.log = logr.Discard()
	}
	ws.hub = newHub(ws.log)

	staticDir := opts.StaticDir
	if staticDir == "" {
		staticDir = DefaultStaticDir
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/frame", ws.handleFrame).Methods("GET")
	r.HandleFunc("/api/status", ws.handleStatus).Methods("GET")
	r.HandleFunc("/api/algorithms", ws.handleAlgorithms).Methods("GET")
	r.HandleFunc("/api/scenes", ws.handleScenes).Methods("GET")
	r.HandleFunc("/api/trace", ws.handleTrace).Methods("GET")
	r.HandleFunc("/api/control", ws.handleControl).Methods("POST")
	r.HandleFunc("/ws", ws.handleWebSocket)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	ws.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}

	return ws
}

// Handler exposes the route table. Tests drive it directly.
func (ws *WebServer) Handler() http.Handler {
	return ws.server.Handler
}

// Start begins serving in a background goroutine.
func (ws *WebServer) Start() {
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.log.Error(err, "web server stopped")
		}
	}()
}

// Shutdown drains in-flight requests and closes the listener.
func (ws *WebServer) Shutdown(ctx context.Context) error {
	return ws.server.Shutdown(ctx)
}

// UpdateFrame stores the latest frame and pushes it to websocket clients.
func (ws *WebServer) UpdateFrame(frame *VizFrame) {
	if frame == nil {
		return
	}
	ws.mu.Lock()
	ws.latestFrame = frame
	ws.mu.Unlock()
	ws.hub.broadcastFrame(frame)
}

// NextCommand returns the next control command if available, non-blocking.
func (ws *WebServer) NextCommand() (visual.ControlCommand, bool) {
	select {
	case cmd := <-ws.commands:
		return cmd, true
	default:
		return visual.ControlCommand{Type: visual.CommandNone}, false
	}
}

// WaitCommand blocks until a command arrives or the context ends.
func (ws *WebServer) WaitCommand(ctx context.Context) (visual.ControlCommand, bool) {
	select {
	case cmd := <-ws.commands:
		return cmd, true
	case <-ctx.Done():
		return visual.ControlCommand{Type: visual.CommandNone}, false
	}
}

func (ws *WebServer) queueCommand(cmd visual.ControlCommand) bool {
	select {
	case ws.commands <- cmd:
		return true
	default:
		return false
	}
}

func (ws *WebServer) handleFrame(w http.ResponseWriter, r *http.Request) {
	ws.mu.RLock()
	frame := ws.latestFrame
	ws.mu.RUnlock()

	if frame == nil {
		http.Error(w, "No frame available", http.StatusNotFound)
		return
	}

	writeJSON(w, ws.log, frame)
}

func (ws *WebServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if ws.statusFunc == nil {
		http.Error(w, "Status not available", http.StatusServiceUnavailable)
		return
	}
	status := ws.statusFunc()
	writeJSON(w, ws.log, &status)
}

func (ws *WebServer) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ws.log, algo.Descriptors())
}

func (ws *WebServer) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ws.log, GetPredefinedScenes())
}

func (ws *WebServer) handleTrace(w http.ResponseWriter, r *http.Request) {
	if ws.tracer == nil {
		http.Error(w, "Trace not available", http.StatusServiceUnavailable)
		return
	}

	var since uint64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid since cursor", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	events := ws.tracer.EventsSince(since)
	if runID := r.URL.Query().Get("run"); runID != "" {
		filtered := events[:0]
		for _, ev := range events {
			if ev.RunID == runID {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	writeJSON(w, ws.log, events)
}

// controlRequest is the JSON body accepted by /api/control and over the
// websocket. Pointer fields distinguish "absent" from zero.
type controlRequest struct {
	Type      string `json:"type"`
	Algorithm string `json:"algorithm,omitempty"`
	DelayMs   *int   `json:"delayMs,omitempty"`
	Count     *int   `json:"count,omitempty"`
	Scene     string `json:"scene,omitempty"`
}

func (ws *WebServer) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cmd, err := ws.processControlRequest(&req)
	if err != nil {
		ws.log.V(1).Info("control rejected", "type", req.Type, "reason", err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !ws.queueCommand(*cmd) {
		http.Error(w, "Command queue full", http.StatusServiceUnavailable)
		return
	}

	ws.log.V(1).Info("control accepted", "type", cmd.Type)
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("Command accepted"))
}

// processControlRequest validates a request and maps it onto a session
// command. Validation happens here so bad input is rejected at the
// boundary instead of being silently dropped by the session loop.
func (ws *WebServer) processControlRequest(req *controlRequest) (*visual.ControlCommand, error) {
	cmd := visual.ControlCommand{DelayMs: -1}

	switch visual.ControlCommandType(req.Type) {
	case visual.CommandStart:
		cmd.Type = visual.CommandStart
		if req.Algorithm != "" {
			if _, _, err := algo.Lookup(req.Algorithm); err != nil {
				return nil, err
			}
			cmd.Algorithm = req.Algorithm
		}
		if req.DelayMs != nil {
			if *req.DelayMs < 0 {
				return nil, errors.New("delayMs must be non-negative")
			}
			cmd.DelayMs = *req.DelayMs
		}
	case visual.CommandStop:
		cmd.Type = visual.CommandStop
	case visual.CommandShuffle:
		cmd.Type = visual.CommandShuffle
		if req.DelayMs != nil {
			if *req.DelayMs < 0 {
				return nil, errors.New("delayMs must be non-negative")
			}
			cmd.DelayMs = *req.DelayMs
		}
	case visual.CommandReset:
		cmd.Type = visual.CommandReset
		if req.Scene != "" {
			if GetSceneByName(req.Scene) == nil {
				return nil, errors.Errorf("unknown scene %q", req.Scene)
			}
			cmd.Scene = req.Scene
		}
	case visual.CommandSetAlgorithm:
		cmd.Type = visual.CommandSetAlgorithm
		if req.Algorithm == "" {
			return nil, errors.New("algorithm is required")
		}
		if _, _, err := algo.Lookup(req.Algorithm); err != nil {
			return nil, err
		}
		cmd.Algorithm = req.Algorithm
	case visual.CommandSetDelay:
		cmd.Type = visual.CommandSetDelay
		if req.DelayMs == nil || *req.DelayMs < 0 {
			return nil, errors.New("delayMs must be present and non-negative")
		}
		cmd.DelayMs = *req.DelayMs
	case visual.CommandSetCount:
		cmd.Type = visual.CommandSetCount
		if req.Count == nil {
			return nil, errors.New("count is required")
		}
		if *req.Count < MinBarCount || *req.Count > MaxBarCount {
			return nil, errors.Errorf("count must be within [%d,%d], got %d", MinBarCount, MaxBarCount, *req.Count)
		}
		cmd.Count = *req.Count
	default:
		return nil, errors.Errorf("unknown command type %q", req.Type)
	}

	return &cmd, nil
}

func (ws *WebServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws.hub.handle(ws, w, r)
}

func writeJSON(w http.ResponseWriter, log logr.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error(err, "encode response")
	}
}
