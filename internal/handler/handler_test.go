package handler

import (
	"bytes"
	"context"
	"errors"
	"math"
	"mime/multipart"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"solvency-engine/internal/advisor"
	"solvency-engine/internal/engine"
	"solvency-engine/internal/logging"
	"solvency-engine/internal/model"
)

type fakeAdvisor struct {
	patch   model.InputPatch
	audio   []byte
	err     error
	gotDoc  advisor.Document
	gotText string
}

func (f *fakeAdvisor) Extract(_ context.Context, doc advisor.Document) (model.InputPatch, error) {
	f.gotDoc = doc
	return f.patch, f.err
}

func (f *fakeAdvisor) Speak(_ context.Context, text string) ([]byte, error) {
	f.gotText = text
	return f.audio, f.err
}

type fakeKeys struct{ key string }

func (k *fakeKeys) Set(key string) { k.key = key }
func (k *fakeKeys) Clear()         { k.key = "" }
func (k *fakeKeys) Source() string {
	if k.key == "" {
		return "none"
	}
	return "runtime"
}

func newHandler(adv *fakeAdvisor, keys *fakeKeys) *Handler {
	eng := &engine.Engine{Now: time.Now}
	return New(eng, adv, keys, logging.Component(logging.Discard(), "handler"))
}

func newCtx(method, path, contentType string, body []byte) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if contentType != "" {
		req.Header.SetContentType(contentType)
	}
	req.SetBody(body)

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	return ctx
}

func TestAnalyze(t *testing.T) {
	h := newHandler(&fakeAdvisor{}, &fakeKeys{})
	ctx := newCtx("POST", "/api/analyze", "application/json",
		[]byte(`{"income":3000,"expenses":5000,"debt":10000,"cash":6000}`))

	h.Route(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var resp model.AnalysisResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.Result.Status != model.StatusCritical {
		t.Fatalf("expected CRITICAL, got %s", resp.Result.Status)
	}
	if resp.Result.InjectionNeeded != 6000 {
		t.Fatalf("expected injection 6000, got %v", resp.Result.InjectionNeeded)
	}
	if len(resp.Result.ProjectionPoints) != 7 {
		t.Fatalf("expected 7 points, got %d", len(resp.Result.ProjectionPoints))
	}
}

func TestAnalyzeOverflowingRatio(t *testing.T) {
	h := newHandler(&fakeAdvisor{}, &fakeKeys{})
	ctx := newCtx("POST", "/api/analyze", "application/json",
		[]byte(`{"income":1,"expenses":0,"debt":1e-10,"cash":1e300}`))

	h.Route(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var resp model.AnalysisResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.Result.SolvencyRatio != math.MaxFloat64 {
		t.Fatalf("expected saturated solvency, got %v", resp.Result.SolvencyRatio)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	h := newHandler(&fakeAdvisor{}, &fakeKeys{})

	ctx := newCtx("GET", "/api/analyze", "", nil)
	h.Route(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", ctx.Response.StatusCode())
	}

	ctx = newCtx("POST", "/api/analyze", "application/json", []byte(`{"income":"lots"}`))
	h.Route(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
	}
	var e model.ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &e); err != nil || e.Status != 400 {
		t.Fatalf("expected error body with status 400, got %s", ctx.Response.Body())
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newHandler(&fakeAdvisor{}, &fakeKeys{})
	ctx := newCtx("GET", "/nope", "", nil)
	h.Route(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}
}

func TestExtractRawBody(t *testing.T) {
	cash := 900.0
	adv := &fakeAdvisor{patch: model.InputPatch{Cash: &cash}}
	h := newHandler(adv, &fakeKeys{})

	ctx := newCtx("POST", "/api/extract", "image/jpeg", []byte{0xff, 0xd8})
	h.Route(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	if adv.gotDoc.MIMEType != "image/jpeg" || len(adv.gotDoc.Data) != 2 {
		t.Fatalf("unexpected document passed: %+v", adv.gotDoc)
	}
	var resp model.ExtractResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Available || resp.Patch.Cash == nil || *resp.Patch.Cash != 900 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestExtractMultipart(t *testing.T) {
	adv := &fakeAdvisor{}
	h := newHandler(adv, &fakeKeys{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "statement.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4"))
	mw.Close()

	ctx := newCtx("POST", "/api/extract", mw.FormDataContentType(), buf.Bytes())
	h.Route(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	if string(adv.gotDoc.Data) != "%PDF-1.4" {
		t.Fatalf("expected uploaded bytes, got %q", adv.gotDoc.Data)
	}
}

func TestExtractUnavailable(t *testing.T) {
	h := newHandler(&fakeAdvisor{err: advisor.ErrUnavailable}, &fakeKeys{})
	ctx := newCtx("POST", "/api/extract", "image/png", []byte{1})
	h.Route(ctx)

	var resp model.ExtractResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ctx.Response.StatusCode() != fasthttp.StatusOK || resp.Available {
		t.Fatalf("expected 200 with available=false, got %d %+v", ctx.Response.StatusCode(), resp)
	}
	if !resp.Patch.Empty() {
		t.Fatalf("expected empty patch, got %+v", resp.Patch)
	}
}

func TestExtractEmptyBody(t *testing.T) {
	h := newHandler(&fakeAdvisor{}, &fakeKeys{})
	ctx := newCtx("POST", "/api/extract", "image/png", nil)
	h.Route(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
	}
}

func TestSpeak(t *testing.T) {
	adv := &fakeAdvisor{audio: []byte{1, 2, 3, 4}}
	h := newHandler(adv, &fakeKeys{})

	ctx := newCtx("POST", "/api/speak", "application/json", []byte(`{"result":{"netFlow":-5}}`))
	h.Route(ctx)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	if string(ctx.Response.Header.ContentType()) != "audio/L16;rate=24000" {
		t.Fatalf("unexpected content type %s", ctx.Response.Header.ContentType())
	}
	if len(ctx.Response.Body()) != 4 {
		t.Fatalf("expected 4 audio bytes, got %d", len(ctx.Response.Body()))
	}
	if adv.gotText == "" {
		t.Fatal("expected narration text to be synthesized")
	}
}

func TestSpeakErrors(t *testing.T) {
	cases := []struct {
		err    error
		body   string
		status int
	}{
		{nil, `{}`, fasthttp.StatusBadRequest},
		{advisor.ErrUnavailable, `{"text":"hola"}`, fasthttp.StatusServiceUnavailable},
		{errors.New("tts down"), `{"text":"hola"}`, fasthttp.StatusBadGateway},
	}
	for _, c := range cases {
		h := newHandler(&fakeAdvisor{err: c.err}, &fakeKeys{})
		ctx := newCtx("POST", "/api/speak", "application/json", []byte(c.body))
		h.Route(ctx)
		if ctx.Response.StatusCode() != c.status {
			t.Fatalf("body %s err %v: expected %d, got %d", c.body, c.err, c.status, ctx.Response.StatusCode())
		}
	}
}

func TestCredentialLifecycle(t *testing.T) {
	keys := &fakeKeys{}
	h := newHandler(&fakeAdvisor{}, keys)

	decode := func(ctx *fasthttp.RequestCtx) model.CredentialResponse {
		t.Helper()
		var resp model.CredentialResponse
		if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		return resp
	}

	ctx := newCtx("GET", "/api/credential", "", nil)
	h.Route(ctx)
	if r := decode(ctx); r.Configured || r.Source != "none" {
		t.Fatalf("expected unconfigured, got %+v", r)
	}

	ctx = newCtx("PUT", "/api/credential", "application/json", []byte(`{"key":"abc-123"}`))
	h.Route(ctx)
	if r := decode(ctx); !r.Configured || r.Source != "runtime" {
		t.Fatalf("expected runtime key, got %+v", r)
	}
	if keys.key != "abc-123" {
		t.Fatalf("expected key stored, got %q", keys.key)
	}

	ctx = newCtx("PUT", "/api/credential", "application/json", []byte(`{"key":"  "}`))
	h.Route(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Fatalf("expected 400 for blank key, got %d", ctx.Response.StatusCode())
	}

	ctx = newCtx("DELETE", "/api/credential", "", nil)
	h.Route(ctx)
	if r := decode(ctx); r.Configured {
		t.Fatalf("expected cleared, got %+v", r)
	}
}

func TestHealth(t *testing.T) {
	h := newHandler(&fakeAdvisor{}, &fakeKeys{})
	ctx := newCtx("GET", "/healthz", "", nil)
	h.Route(ctx)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
}
