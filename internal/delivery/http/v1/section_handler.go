package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
)

type SectionHandler struct {
	contentUC domain.ContentUsecase
}

type SectionList struct {
	Sections []domain.Section `json:"sections"`
}

// NewSectionHandler registers reads on public and writes on admin.
func NewSectionHandler(public, admin *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &SectionHandler{contentUC: contentUC}

	public.GET("/sections", handler.List)
	public.GET("/sections/:id", handler.Get)

	admin.POST("/sections", handler.Create)
	admin.PUT("/sections/:id", handler.Update)
	admin.DELETE("/sections/:id", handler.Delete)
}

// List godoc
// @Summary      List Sections
// @Tags         sections
// @Produce      json
// @Param        type  query     string  false  "Section type"
// @Success      200   {object}  response.Response{data=SectionList}
// @Failure      400   {object}  response.Response
// @Router       /sections [get]
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.contentUC.ListSections(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sections retrieved", SectionList{Sections: sections})
}

// Get godoc
// @Summary      Get Section
// @Tags         sections
// @Produce      json
// @Param        id   path      string  true  "Section ID"
// @Success      200  {object}  response.Response{data=domain.Section}
// @Failure      404  {object}  response.Response
// @Router       /sections/{id} [get]
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.contentUC.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section retrieved", section)
}

// Create godoc
// @Summary      Create Section
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        section  body      domain.CreateSectionRequest  true  "Section"
// @Success      201      {object}  response.Response{data=domain.Section}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /sections [post]
func (h *SectionHandler) Create(c *gin.Context) {
	var req domain.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	section, err := h.contentUC.CreateSection(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Section created", section)
}

// Update godoc
// @Summary      Update Section
// @Description  Only fields present in the body are changed.
// @Tags         sections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Section ID"
// @Param        section  body      domain.UpdateSectionRequest  true  "Changed fields"
// @Success      200      {object}  response.Response{data=domain.Section}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /sections/{id} [put]
func (h *SectionHandler) Update(c *gin.Context) {
	var req domain.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	section, err := h.contentUC.UpdateSection(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section updated", section)
}

// Delete godoc
// @Summary      Delete Section
// @Tags         sections
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Section ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sections/{id} [delete]
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.contentUC.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Section deleted", nil)
}
