package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/talentbridge/job-portal/internal/api/metrics"
	"github.com/talentbridge/job-portal/internal/core/domain"
	"github.com/talentbridge/job-portal/internal/core/ports"
)

// UploadHandler stores files for the caller and serves stored files back.
type UploadHandler struct {
	portal  ports.PortalService
	storage ports.ObjectStorage
}

func NewUploadHandler(portal ports.PortalService, storage ports.ObjectStorage) *UploadHandler {
	return &UploadHandler{portal: portal, storage: storage}
}

// Upload handles POST /v1/uploads/:bucket as multipart/form-data with a
// "file" part and an optional "path" field (defaults to the file name).
// Uploading to an existing path replaces the file.
//
// @Summary      Upload a file
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        bucket  path      string  true   "avatars, resumes, company-logos or vendor-logos"
// @Param        file    formData  file    true   "File to upload"
// @Param        path    formData  string  false  "Destination path inside the caller's folder"
// @Success      201     {object}  ports.UploadResult
// @Failure      422     {object}  errorResponse
// @Failure      502     {object}  errorResponse
// @Router       /v1/uploads/{bucket} [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	bucket := c.Param("bucket")
	label := bucket
	if _, ok := domain.UploadLimit(bucket); !ok {
		label = "unknown"
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	path := c.FormValue("path")
	if path == "" {
		path = fh.Filename
	}

	res, err := h.portal.UploadFile(c.Request().Context(), view, ports.UploadInput{
		Bucket:      bucket,
		Path:        path,
		Body:        f,
		Size:        fh.Size,
		ContentType: fh.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(label, uploadResult(err)).Inc()
		return err
	}
	metrics.UploadsTotal.WithLabelValues(label, "ok").Inc()
	return c.JSON(http.StatusCreated, res)
}

// Delete handles DELETE /v1/uploads/:bucket/*.
//
// @Summary      Delete an uploaded file
// @Tags         uploads
// @Security     BearerAuth
// @Param        bucket  path  string  true  "Bucket"
// @Param        path    path  string  true  "Path inside the caller's folder"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/uploads/{bucket}/{path} [delete]
func (h *UploadHandler) Delete(c echo.Context) error {
	view, err := ctxView(c)
	if err != nil {
		return err
	}
	if err := h.portal.DeleteFile(c.Request().Context(), view, c.Param("bucket"), wildcardPath(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Serve handles GET /storage/:bucket/*, the target of public file URLs.
//
// @Summary      Download a stored file
// @Tags         uploads
// @Param        bucket  path  string  true  "Bucket"
// @Param        path    path  string  true  "Object key"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /storage/{bucket}/{path} [get]
func (h *UploadHandler) Serve(c echo.Context) error {
	obj, err := h.storage.Open(c.Request().Context(), c.Param("bucket"), wildcardPath(c))
	if err != nil {
		return err
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	return c.Stream(http.StatusOK, contentType, obj.Body)
}

// wildcardPath returns the "*" route segment, unescaped when the router
// matched on the raw path.
func wildcardPath(c echo.Context) string {
	raw := c.Param("*")
	if p, err := url.PathUnescape(raw); err == nil {
		return p
	}
	return raw
}

func uploadResult(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "rejected"
	}
	return "error"
}
