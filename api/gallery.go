package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jacentio/studiodesk/media"
)

// ShareURL is the public link a gallery's QR code encodes.
func (s *Server) ShareURL(r *http.Request, galleryID string) string {
	base := s.publicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/g/" + galleryID
}

func (s *Server) galleryQR(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.store.Gallery(id); !ok {
		respondError(c, http.StatusNotFound, "gallery not found")
		return
	}

	png, err := qrcode.Encode(s.ShareURL(c.Request, id), qrcode.Medium, 256)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate qr")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) uploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.store.Gallery(id); !ok {
		respondError(c, http.StatusNotFound, "gallery not found")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read file")
		return
	}
	defer f.Close()

	img, err := s.media.AddImage(c.Request.Context(), id, c.PostForm("title"), f)
	switch {
	case errors.Is(err, media.ErrGalleryNotFound):
		respondError(c, http.StatusNotFound, "gallery not found")
	case errors.Is(err, media.ErrUploadDisabled):
		respondError(c, http.StatusServiceUnavailable, "uploads are not configured")
	case err != nil:
		s.logger.Error("image upload failed", "galleryID", id, "error", err)
		respondError(c, http.StatusBadGateway, "upload failed")
	default:
		c.JSON(http.StatusCreated, img)
	}
}
