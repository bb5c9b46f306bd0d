package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
)

type MediaHandler struct {
	mediaUC domain.MediaUsecase
}

func NewMediaHandler(admin *gin.RouterGroup, mediaUC domain.MediaUsecase) {
	handler := &MediaHandler{mediaUC: mediaUC}

	admin.POST("/media/upload-url", handler.CreateUploadURL)
}

// CreateUploadURL godoc
// @Summary      Presign Media Upload
// @Description  Returns a presigned S3 PUT URL. The client uploads directly to S3 with the same Content-Type.
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        upload  body      domain.MediaUploadRequest  true  "Upload"
// @Success      200     {object}  response.Response{data=domain.MediaUpload}
// @Failure      400     {object}  response.Response
// @Failure      503     {object}  response.Response
// @Router       /media/upload-url [post]
func (h *MediaHandler) CreateUploadURL(c *gin.Context) {
	var req domain.MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	upload, err := h.mediaUC.CreateUploadURL(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Upload URL created", upload)
}
