package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/domain"
)

const (
	// HeaderSessionID ties a request to a viewer session.
	HeaderSessionID = "X-Session-ID"
	// HeaderRateLimitRemaining reports submissions left in the client's window.
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

type ContactHandler struct {
	service  *application.ContactService
	sessions *application.SessionManager
	logger   *zap.Logger
}

func NewContactHandler(service *application.ContactService, sessions *application.SessionManager, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{service: service, sessions: sessions, logger: logger}
}

// Create submits the contact form. When X-Session-ID names a live session
// its form tracker guards against double submission.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var form domain.ContactForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "invalid request body")
	}

	var tracker *application.FormTracker
	if id := c.Get(HeaderSessionID); id != "" && h.sessions != nil {
		if sess, err := h.sessions.Get(id); err == nil {
			tracker = sess.Form
		} else {
			h.logger.Debug("contact form for unknown session", zap.String("session", id))
		}
	}

	res, err := h.service.Submit(c.UserContext(), c.IP(), tracker, form)
	if left, ok := h.service.Remaining(c.IP()); ok {
		c.Set(HeaderRateLimitRemaining, strconv.Itoa(left))
	}
	if err != nil {
		return errorResponse(c, err, application.MessageFailed)
	}
	return c.JSON(res)
}
