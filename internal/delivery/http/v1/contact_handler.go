package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
)

const msgContactSent = "Message sent successfully!"

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// ContactData is the payload of a successful submission.
type ContactData struct {
	EmailSent bool   `json:"emailSent"`
	Notice    string `json:"notice,omitempty"`
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the message, verifies the reCAPTCHA token, applies the per-IP limit and emails the site owner and the sender.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response{data=ContactData}
// @Failure      400      {object}  response.Response{details=[]validation.FieldError}
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	client := domain.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: response.RequestID(c),
	}

	outcome, err := h.contactUC.SubmitContact(c.Request.Context(), &req, client)
	if err != nil {
		c.Error(err)
		return
	}

	for k, v := range outcome.RateLimit.Headers() {
		c.Header(k, v)
	}

	response.Success(c, http.StatusOK, msgContactSent, ContactData{
		EmailSent: outcome.EmailSent,
		Notice:    outcome.Notice,
	})
}
