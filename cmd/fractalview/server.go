package main

import (
	"bytes"
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/gogpu/fractal"
)

//go:embed static
var staticFiles embed.FS

const (
	// maxSide bounds the requested width and height.
	maxSide = 4096

	// requestLimit caps the size of one JSON request message.
	requestLimit = 16 << 10

	// renderTimeout bounds a single render.
	renderTimeout = 30 * time.Second
)

// request asks for one render.
type request struct {
	Generator string            `json:"generator"`
	Params    map[string]string `json:"params"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Seed      *uint64           `json:"seed,omitempty"`
	Caption   bool              `json:"caption,omitempty"`
}

// errorReply is sent as a text frame when a request fails.
type errorReply struct {
	Error string `json:"error"`
}

// clampSize keeps a requested dimension in [1, maxSide]. Zero or negative
// sizes fall back to def.
func clampSize(v, def int) int {
	if v <= 0 {
		return def
	}
	return min(v, maxSide)
}

// newMux serves the page at / and the render socket at /ws.
func newMux(logger *slog.Logger) *http.ServeMux {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(logger))
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

// websocketHandler answers every request message with one PNG frame, or a
// JSON error, until the client goes away. No state is kept between messages.
func websocketHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept", "err", err)
			return
		}
		defer c.CloseNow()
		c.SetReadLimit(requestLimit)

		ctx := r.Context()
		for {
			var req request
			if err := wsjson.Read(ctx, c, &req); err != nil {
				if s := websocket.CloseStatus(err); s != websocket.StatusNormalClosure && s != websocket.StatusGoingAway {
					logger.Debug("websocket read", "err", err)
				}
				return
			}
			if err := serve(ctx, c, req, logger); err != nil {
				logger.Debug("websocket write", "err", err)
				return
			}
		}
	}
}

func serve(ctx context.Context, c *websocket.Conn, req request, logger *slog.Logger) error {
	frame, err := render(ctx, req)
	if err != nil {
		logger.Info("render failed", "generator", req.Generator, "err", err)
		return wsjson.Write(ctx, c, errorReply{Error: err.Error()})
	}
	return c.Write(ctx, websocket.MessageBinary, frame)
}

// render draws one request and returns the encoded PNG.
func render(ctx context.Context, req request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	width := clampSize(req.Width, 800)
	height := clampSize(req.Height, 600)

	var opts []fractal.RenderOption
	if req.Seed != nil {
		opts = append(opts, fractal.WithSeed(*req.Seed))
	}
	pm, err := fractal.Render(ctx, req.Generator, width, height, req.Params, opts...)
	if err != nil {
		return nil, err
	}
	if req.Caption {
		fractal.DrawCaption(pm, req.Generator, fractal.White)
	}

	var buf bytes.Buffer
	if err := pm.Encode(&buf, fractal.FormatPNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
