package handler

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"solvency-engine/internal/advisor"
	"solvency-engine/internal/dossier"
	"solvency-engine/internal/model"
)

// Processor runs one analysis submission.
type Processor interface {
	Process(ctx context.Context, req *model.AnalysisRequest) *model.AnalysisResponse
}

// Advisor is the optional AI collaborator as seen by the HTTP layer.
type Advisor interface {
	Extract(ctx context.Context, doc advisor.Document) (model.InputPatch, error)
	Speak(ctx context.Context, text string) ([]byte, error)
}

// Credentials is the caller-driven API key lifecycle.
type Credentials interface {
	Set(key string)
	Clear()
	Source() string
}

type Handler struct {
	engine  Processor
	advisor Advisor
	keys    Credentials
	log     *logrus.Entry
}

func New(engine Processor, adv Advisor, keys Credentials, log *logrus.Entry) *Handler {
	return &Handler{engine: engine, advisor: adv, keys: keys, log: log}
}

// Route dispatches by path. It is the fasthttp.RequestHandler of the server.
func (h *Handler) Route(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	switch string(ctx.Path()) {
	case "/api/analyze":
		h.HandleAnalyze(ctx)
	case "/api/extract":
		h.HandleExtract(ctx)
	case "/api/speak":
		h.HandleSpeak(ctx)
	case "/api/credential":
		h.HandleCredential(ctx)
	case "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
	h.log.WithFields(logrus.Fields{
		"method":      string(ctx.Method()),
		"path":        string(ctx.Path()),
		"status":      ctx.Response.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request")
}

func (h *Handler) HandleAnalyze(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.AnalysisRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, h.engine.Process(ctx, &req))
}

func (h *Handler) HandleExtract(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	doc, err := readDocument(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if len(doc.Data) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "Empty document")
		return
	}

	patch, err := h.advisor.Extract(ctx, doc)
	switch {
	case errors.Is(err, advisor.ErrUnavailable):
		writeJSON(ctx, fasthttp.StatusOK, model.ExtractResponse{
			Available: false,
			Message:   "OCR requiere API KEY válida.",
		})
	case err != nil:
		writeJSON(ctx, fasthttp.StatusOK, model.ExtractResponse{
			Available: true,
			Message:   "Extracción fallida: " + err.Error(),
		})
	default:
		writeJSON(ctx, fasthttp.StatusOK, model.ExtractResponse{Patch: patch, Available: true})
	}
}

func (h *Handler) HandleSpeak(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.SpeakRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" && req.Result != nil {
		text = dossier.Narration(*req.Result)
	}
	if text == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "text or result is required")
		return
	}

	audio, err := h.advisor.Speak(ctx, text)
	switch {
	case errors.Is(err, advisor.ErrUnavailable):
		writeError(ctx, fasthttp.StatusServiceUnavailable, err.Error())
	case err != nil:
		writeError(ctx, fasthttp.StatusBadGateway, err.Error())
	default:
		ctx.SetContentType("audio/L16;rate=24000")
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBody(audio)
	}
}

func (h *Handler) HandleCredential(ctx *fasthttp.RequestCtx) {
	switch {
	case ctx.IsGet():
	case ctx.IsPut(), ctx.IsPost():
		var req model.CredentialRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if strings.TrimSpace(req.Key) == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "key is required")
			return
		}
		h.keys.Set(req.Key)
		h.log.Info("runtime api key installed")
	case ctx.IsDelete():
		h.keys.Clear()
		h.log.Info("runtime api key cleared")
	default:
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	src := h.keys.Source()
	writeJSON(ctx, fasthttp.StatusOK, model.CredentialResponse{
		Configured: src != "none",
		Source:     src,
	})
}

// readDocument accepts either a multipart upload in field "file" or the raw
// request body typed by Content-Type.
func readDocument(ctx *fasthttp.RequestCtx) (advisor.Document, error) {
	ct := string(ctx.Request.Header.ContentType())
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return advisor.Document{MIMEType: ct, Data: ctx.PostBody()}, nil
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return advisor.Document{}, errors.New("multipart field \"file\" is required")
	}
	f, err := fh.Open()
	if err != nil {
		return advisor.Document{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return advisor.Document{}, err
	}
	return advisor.Document{MIMEType: fh.Header.Get("Content-Type"), Data: data}, nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
