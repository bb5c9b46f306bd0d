package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prateekh777/professional-website/internal/delivery/http/response"
	"github.com/prateekh777/professional-website/internal/domain"
	"github.com/prateekh777/professional-website/pkg/apperror"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

// ProjectList wraps the projects array.
type ProjectList struct {
	Projects []domain.Project `json:"projects"`
}

func NewContentHandler(public *gin.RouterGroup, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}

	public.GET("/projects", handler.ListProjects)
	public.GET("/interests", handler.ListInterests)
	public.GET("/ai-works", handler.ListAiWorks)
	public.GET("/case-studies", handler.ListCaseStudies)
}

// ListProjects godoc
// @Summary      List Projects
// @Tags         content
// @Produce      json
// @Param        featured  query     bool  false  "Only featured (true) or non-featured (false) projects"
// @Success      200       {object}  response.Response{data=ProjectList}
// @Failure      400       {object}  response.Response
// @Router       /projects [get]
func (h *ContentHandler) ListProjects(c *gin.Context) {
	featured, err := featuredQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	projects, err := h.contentUC.ListProjects(c.Request.Context(), featured)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Projects retrieved", ProjectList{Projects: projects})
}

// ListInterests godoc
// @Summary      List Interests
// @Tags         content
// @Produce      json
// @Param        category  query     string  false  "Interest category"
// @Param        featured  query     bool    false  "Only featured (true) or non-featured (false) interests"
// @Success      200       {object}  response.Response{data=[]domain.Interest}
// @Failure      400       {object}  response.Response
// @Router       /interests [get]
func (h *ContentHandler) ListInterests(c *gin.Context) {
	featured, err := featuredQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	interests, err := h.contentUC.ListInterests(c.Request.Context(), c.Query("category"), featured)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interests retrieved", interests)
}

// ListAiWorks godoc
// @Summary      List AI Works
// @Tags         content
// @Produce      json
// @Param        featured    query     bool    false  "Only featured (true) or non-featured (false) works"
// @Param        technology  query     string  false  "Technology the work must list"
// @Success      200         {object}  response.Response{data=[]domain.AiWork}
// @Failure      400         {object}  response.Response
// @Router       /ai-works [get]
func (h *ContentHandler) ListAiWorks(c *gin.Context) {
	featured, err := featuredQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	works, err := h.contentUC.ListAiWorks(c.Request.Context(), featured, c.Query("technology"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "AI works retrieved", works)
}

// ListCaseStudies godoc
// @Summary      List Case Studies
// @Tags         content
// @Produce      json
// @Param        featured  query     bool  false  "Only featured (true) or non-featured (false) case studies"
// @Success      200       {object}  response.Response{data=[]domain.CaseStudy}
// @Failure      400       {object}  response.Response
// @Router       /case-studies [get]
func (h *ContentHandler) ListCaseStudies(c *gin.Context) {
	featured, err := featuredQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	studies, err := h.contentUC.ListCaseStudies(c.Request.Context(), featured)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Case studies retrieved", studies)
}

// featuredQuery returns nil when the filter is absent.
func featuredQuery(c *gin.Context) (*bool, error) {
	raw, ok := c.GetQuery("featured")
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.BadRequest("featured must be true or false")
	}
	return &v, nil
}
