package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobassist/internal/http/middleware"
	"jobassist/internal/service"
)

// uploadField is the multipart field carrying the CV file.
const uploadField = "cv"

// ListCVs godoc
// @Summary List the caller's CVs, newest first
// @Tags cv
// @Produce json
// @Success 200 {array} model.CV
// @Failure 401 {object} errorPayload
// @Router /api/cv [get]
func ListCVs(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cvs, err := svc.List(c.UserContext(), middleware.CurrentSession(c).UserID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(cvs)
	}
}

// UploadCV godoc
// @Summary Upload a CV
// @Description Accepts PDF or DOCX in the multipart field "cv", extracts its
// @Description text and stores it. Re-uploading a file name replaces that CV.
// @Tags cv
// @Accept mpfd
// @Produce json
// @Param cv formData file true "CV file"
// @Success 200 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/cv/upload [post]
func UploadCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile(uploadField)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Aucun fichier CV n'a été téléversé.")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Impossible de lire le fichier téléversé.")
		}
		defer f.Close()

		cv, err := svc.Upload(c.UserContext(), service.UploadInput{
			UserID:      middleware.CurrentSession(c).UserID,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		})
		if err != nil {
			if ok, werr := writeValidation(c, err); ok {
				return werr
			}
			switch {
			case errors.Is(err, service.ErrNoFile):
				return writeError(c, fiber.StatusBadRequest, "Aucun fichier CV n'a été téléversé.")
			case errors.Is(err, service.ErrUnsupportedType):
				return writeError(c, fiber.StatusBadRequest, "Seuls les fichiers PDF et DOCX sont autorisés !")
			case errors.Is(err, service.ErrFileTooLarge):
				return writeError(c, fiber.StatusBadRequest, "Le fichier dépasse la taille maximale autorisée.")
			default:
				return writeError(c, fiber.StatusInternalServerError, err.Error())
			}
		}

		return c.JSON(messagePayload{Message: "CV téléversé et parsé avec succès", CVID: cv.ID})
	}
}

// DownloadCV redirects to a short-lived link to the original file.
func DownloadCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.DownloadURL(c.UserContext(), middleware.CurrentSession(c).UserID, c.Params("cvId"))
		if errors.Is(err, service.ErrNotFound) {
			return writeError(c, fiber.StatusNotFound, "CV non trouvé")
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}
