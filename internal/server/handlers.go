package server

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/middleware"
	"github.com/vango-dev/domkit/pkg/render"
)

// RenderRequest is the body of POST /render and of websocket messages.
type RenderRequest struct {
	// ID is echoed back on websocket responses.
	ID string `json:"id,omitempty"`

	Template string          `json:"template"`
	Data     json.RawMessage `json:"data,omitempty"`
	Selector string          `json:"selector,omitempty"`
	Pretty   *bool           `json:"pretty,omitempty"`
}

// RenderResponse is sent for every websocket message.
type RenderResponse struct {
	ID    string     `json:"id,omitempty"`
	HTML  string     `json:"html,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func errorBody(err error) *ErrorBody {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return &ErrorBody{Message: err.Error()}
	}
	body := &ErrorBody{Code: e.Code, Message: e.Message, Detail: e.Detail}
	if e.Wrapped != nil && body.Detail == "" {
		body.Detail = e.Wrapped.Error()
	}
	if e.Location != nil {
		body.Line = e.Location.Line
		body.Column = e.Location.Column
	}
	return body
}

// renderData returns the raw render map of req. A JSON string holds YAML
// text and is unquoted.
func renderData(req *RenderRequest) ([]byte, error) {
	data := bytes.TrimSpace(req.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil, errors.New("E101").Wrap(err)
		}
		return []byte(text), nil
	}
	return data, nil
}

func (s *Server) execute(req *RenderRequest) (string, error) {
	data, err := renderData(req)
	if err != nil {
		return "", err
	}
	pretty := s.cfg.Render.Pretty
	if req.Pretty != nil {
		pretty = *req.Pretty
	}
	return render.Execute(s.newDocument(), render.Template{
		Markup:   req.Template,
		Data:     data,
		Selector: req.Selector,
		Pretty:   pretty,
		Indent:   s.cfg.Render.Indent,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("E160").WithDetail("Body must be a JSON render request.").Wrap(err))
		return
	}

	out, err := s.execute(&req)
	if err != nil {
		s.logger.DebugContext(r.Context(), "render failed", "error", err)
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error *ErrorBody `json:"error"`
	}{errorBody(err)})
}

// handleWebSocket answers each text message with a RenderResponse until
// the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.DebugContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	middleware.RecordWebSocketOpen()
	defer middleware.RecordWebSocketClose()
	conn.SetReadLimit(maxBodyBytes)

	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				middleware.RecordWebSocketError(err)
				s.logger.DebugContext(r.Context(), "websocket read failed", "error", err)
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}

		var resp RenderResponse
		var req RenderRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			resp.Error = errorBody(errors.New("E160").Wrap(err))
		} else {
			resp.ID = req.ID
			out, err := s.execute(&req)
			if err != nil {
				resp.Error = errorBody(err)
			} else {
				resp.HTML = out
			}
		}

		data, err := json.Marshal(resp)
		if err != nil {
			middleware.RecordWebSocketError(err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			middleware.RecordWebSocketError(err)
			return
		}
	}
}
