package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"vidshare/internal/domain/user"
	"vidshare/internal/domain/video"
	"vidshare/internal/services"
	"vidshare/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	gate    *services.UploadGate
	service *services.VideoService
}

func NewVideoHandler(gate *services.UploadGate, service *services.VideoService) *VideoHandler {
	return &VideoHandler{gate: gate, service: service}
}

func (h *VideoHandler) Create(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}

	fields, file, err := parseUploadForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid multipart form", "INVALID_REQUEST"))
		return
	}

	ctx := c.Request.Context()
	prefix, err := h.gate.ValidateAndPrepare(ctx, services.UploadRequest{
		Fields: fields,
		File:   file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	v, err := h.service.Create(ctx, active, services.CreateVideoInput{
		Title:       fields["title"],
		Category:    fields["category"],
		Description: fields["description"],
	}, *file, prefix)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.NewVideoResponse(v)))
}

func (h *VideoHandler) Update(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}

	fields, file, err := parseUploadForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid multipart form", "INVALID_REQUEST"))
		return
	}

	ctx := c.Request.Context()
	prefix, err := h.gate.ValidateAndPrepare(ctx, services.UploadRequest{
		Update:  true,
		VideoID: videoID,
		Fields:  fields,
		File:    file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	v, err := h.service.Update(ctx, videoID, active, services.UpdateVideoInput{
		Title:       fields["title"],
		Category:    fields["category"],
		Description: fields["description"],
	}, file, prefix)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewVideoResponse(v)))
}

func (h *VideoHandler) Delete(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}
	if err := h.service.Remove(c.Request.Context(), videoID, active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

func (h *VideoHandler) GetOne(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}
	v, err := h.service.GetOne(c.Request.Context(), videoID, active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewVideoResponse(v)))
}

func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.service.GetAll(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"videos": httpdto.NewVideoListResponse(videos)}))
}

func (h *VideoHandler) ListOwn(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	videos, err := h.service.GetOwnVideos(c.Request.Context(), active, paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"videos": httpdto.NewVideoListResponse(videos)}))
}

func (h *VideoHandler) ListByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id", "INVALID_REQUEST"))
		return
	}
	videos, err := h.service.GetUserVideos(c.Request.Context(), userID, paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"videos": httpdto.NewVideoListResponse(videos)}))
}

func (h *VideoHandler) ListByCategory(c *gin.Context) {
	videos, err := h.service.GetCategoryVideos(c.Request.Context(), c.Param("name"), paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"videos": httpdto.NewVideoListResponse(videos)}))
}

func (h *VideoHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("query parameter q is required", "INVALID_REQUEST"))
		return
	}
	videos, err := h.service.Search(c.Request.Context(), query, paginationFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"videos": httpdto.NewVideoListResponse(videos)}))
}

func (h *VideoHandler) GetFile(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}
	data, v, err := h.service.GetFile(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeForPath(v.FilePath), data)
}

func (h *VideoHandler) UploadThumbnail(c *gin.Context) {
	active, ok := activeUser(c)
	if !ok {
		return
	}
	videoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid video id", "INVALID_REQUEST"))
		return
	}

	_, file, err := parseUploadForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid multipart form", "INVALID_REQUEST"))
		return
	}

	v, err := h.service.UploadThumbnail(c.Request.Context(), active, videoID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewVideoResponse(v)))
}

// parseUploadForm extracts the text fields and the single "file" part
// from a multipart request. A missing file part yields a nil FileUpload;
// the gate decides whether that is acceptable.
func parseUploadForm(c *gin.Context) (map[string]string, *services.FileUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return map[string]string{}, nil, nil
		}
		return nil, nil, err
	}

	fields := make(map[string]string, len(form.Value))
	for name, values := range form.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	files := form.File["file"]
	if len(files) == 0 {
		return fields, nil, nil
	}

	upload, err := readFilePart(files[0])
	if err != nil {
		return nil, nil, err
	}
	return fields, upload, nil
}

func readFilePart(fh *multipart.FileHeader) (*services.FileUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	name := fh.Filename
	if ext := strings.LastIndex(name, "."); ext > 0 {
		name = name[:ext]
	}

	return &services.FileUpload{
		Data:         data,
		Size:         fh.Size,
		MimeType:     fh.Header.Get("Content-Type"),
		OriginalName: name,
	}, nil
}

func paginationFromQuery(c *gin.Context) video.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return video.Pagination{
		Page:    page,
		Limit:   limit,
		Order:   c.DefaultQuery("order", "desc"),
		OrderBy: c.DefaultQuery("order_by", video.OrderByDate),
	}
}

func contentTypeForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".mp4"):
		return "video/mp4"
	case strings.HasSuffix(path, ".webm"):
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

func activeUser(c *gin.Context) (user.Active, bool) {
	active, ok := services.ActiveFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		c.Abort()
	}
	return active, ok
}

func respondError(c *gin.Context, err error) {
	status, code := httpdto.StatusFor(err)
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
}
