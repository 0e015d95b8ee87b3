package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/viewer"
)

const (
	eventBuffer       = 32
	keepAliveInterval = 15 * time.Second
)

// SessionHandler drives viewer sessions: gallery filter, lightbox and the
// slideshow widgets, plus the event stream of timer-driven changes.
type SessionHandler struct {
	sessions *application.SessionManager
	logger   *zap.Logger
}

func NewSessionHandler(sessions *application.SessionManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

func (h *SessionHandler) session(c *fiber.Ctx) (*application.Session, error) {
	return h.sessions.Get(c.Params("id"))
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	sess := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(sess.Snapshot())
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	return c.JSON(sess.Snapshot())
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("id")); err != nil {
		return errorResponse(c, err, "could not close session")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type categoryRequest struct {
	Category string `json:"category"`
}

func (h *SessionHandler) SelectCategory(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return c.JSON(sess.Gallery.SelectCategory(domain.ParseCategory(req.Category)))
}

type indexRequest struct {
	Index *int `json:"index"`
}

func (h *SessionHandler) OpenLightbox(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	var req indexRequest
	if err := c.BodyParser(&req); err != nil || req.Index == nil {
		return badRequest(c, "index is required")
	}
	snap, err := sess.Gallery.OpenImage(*req.Index)
	if err != nil {
		return errorResponse(c, err, "could not open image")
	}
	return c.JSON(snap)
}

type keyRequest struct {
	Key string `json:"key"`
}

func (h *SessionHandler) LightboxKey(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	var req keyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	snap, handled := sess.Gallery.HandleKey(viewer.Key(req.Key))
	return c.JSON(fiber.Map{"handled": handled, "gallery": snap})
}

type dragRequest struct {
	Phase string  `json:"phase"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func (h *SessionHandler) LightboxDrag(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	var req dragRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	p := viewer.Point{X: req.X, Y: req.Y}

	var op func(*viewer.Lightbox)
	switch req.Phase {
	case "start":
		op = func(l *viewer.Lightbox) { l.DragStart(p) }
	case "move":
		op = func(l *viewer.Lightbox) { l.DragMove(p) }
	case "end":
		op = (*viewer.Lightbox).DragEnd
	default:
		return badRequest(c, "phase must be start, move or end")
	}
	return c.JSON(sess.Gallery.Lightbox(op))
}

var lightboxActions = map[string]func(*viewer.Lightbox){
	"close":      (*viewer.Lightbox).Close,
	"next":       (*viewer.Lightbox).Next,
	"prev":       (*viewer.Lightbox).Prev,
	"zoom-in":    (*viewer.Lightbox).ZoomIn,
	"zoom-out":   (*viewer.Lightbox).ZoomOut,
	"reset-zoom": (*viewer.Lightbox).ResetZoom,
}

func (h *SessionHandler) LightboxAction(c *fiber.Ctx) error {
	op, ok := lightboxActions[c.Params("action")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown lightbox action"})
	}
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	return c.JSON(sess.Gallery.Lightbox(op))
}

func (h *SessionHandler) CarouselAction(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	carousel, ok := sess.Carousel(c.Params("name"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown carousel"})
	}

	switch c.Params("action") {
	case "next":
		carousel.Next()
	case "prev":
		carousel.Prev()
	case "play":
		carousel.Play()
	case "pause":
		carousel.Pause()
	case "toggle":
		carousel.Toggle()
	case "goto":
		var req indexRequest
		if err := c.BodyParser(&req); err != nil || req.Index == nil {
			return badRequest(c, "index is required")
		}
		carousel.GoTo(*req.Index)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown carousel action"})
	}
	return c.JSON(carousel.State())
}

// Events streams carousel changes as Server-Sent Events. The current state
// of every carousel is sent first; the stream ends when the session does.
func (h *SessionHandler) Events(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return errorResponse(c, err, "could not load session")
	}
	events, cancel := sess.Subscribe(eventBuffer)
	initial := sess.CarouselStates()
	logger := h.logger.With(zap.String("session", sess.ID))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for _, st := range initial {
			if err := writeEvent(w, application.Event{Type: "carousel", Data: st}); err != nil {
				return
			}
		}
		if err := w.Flush(); err != nil {
			return
		}

		ping := time.NewTicker(keepAliveInterval)
		defer ping.Stop()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					fmt.Fprint(w, "event: end\ndata: {}\n\n")
					w.Flush()
					return
				}
				if err := writeEvent(w, ev); err != nil {
					logger.Warn("encoding event failed", zap.Error(err))
					continue
				}
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				logger.Debug("event stream closed by client")
				return
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, ev application.Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
	return err
}
