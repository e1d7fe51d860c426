package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/resources"
	"todolist/internal/services"
)

const uploadAppDir = "todolist"

type FileHandler struct {
	base
	res *resources.Resources
}

func NewFileHandler(res *resources.Resources, catalog *i18n.Catalog, log logger.Logger) *FileHandler {
	return &FileHandler{base: base{catalog: catalog, log: log}, res: res}
}

// @Summary  Download an uploaded file
// @Tags     file
// @Param    filePath  path  string  true  "Public path, e.g. todolist/users/1/1735333146622-plugin.png"
// @Success  200
// @Failure  400  {object}  map[string]interface{}
// @Failure  404  {object}  map[string]interface{}
// @Router   /file/{filePath} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	public := strings.TrimPrefix(c.Param("filePath"), "/")
	abs, err := h.res.ResolveUpload(public)
	if err != nil {
		h.respondError(c, services.BadRequest("Invalid file path."))
		return
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			h.log.Warn("[file][serve] stat %s: %v", public, err)
		}
		h.respondError(c, services.NotFound("File not found."))
		return
	}
	c.File(abs)
}

// @Summary   Upload a file
// @Tags      file
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     file  formData  file  true  "File"
// @Success   201   {object}  map[string]string
// @Failure   400   {object}  map[string]interface{}
// @Failure   401   {object}  map[string]interface{}
// @Router    /file/upload [post]
func (h *FileHandler) Upload(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, services.BadRequest("File is required."))
		return
	}
	dst, err := h.res.FileNameBuilder(uploadAppDir, &user.ID, fh.Filename)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		h.respondError(c, err)
		return
	}
	public, err := h.res.PublicFileUploadPath(dst)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Log("[file][upload] [user %d] stored %s (%d bytes)", user.ID, public, fh.Size)
	c.JSON(http.StatusCreated, gin.H{"path": public})
}
