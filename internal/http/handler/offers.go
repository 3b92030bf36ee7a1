package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobassist/internal/http/middleware"
	"jobassist/internal/jobsearch"
	"jobassist/internal/service"
)

// SearchOffers godoc
// @Summary Search the offer catalogue
// @Tags offers
// @Produce json
// @Param query query string false "Text in title or description"
// @Param location query string false "Location substring"
// @Param contractType query string false "Exact contract type"
// @Success 200 {array} model.SearchOffer
// @Failure 401 {object} errorPayload
// @Router /api/offers [get]
func SearchOffers(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offers, err := svc.Search(c.UserContext(), jobsearch.Query{
			Text:         c.Query("query"),
			Location:     c.Query("location"),
			ContractType: c.Query("contractType"),
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(offers)
	}
}

// ImportOffer godoc
// @Summary Import an offer into the caller's list
// @Tags offers
// @Accept json
// @Produce json
// @Param body body service.ImportInput true "Offer"
// @Success 200 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/offers/import [post]
func ImportOffer(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ImportInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, msgBadRequest)
		}

		offer, err := svc.Import(c.UserContext(), middleware.CurrentSession(c).UserID, in)
		if err != nil {
			if ok, werr := writeValidation(c, err); ok {
				return werr
			}
			if errors.Is(err, service.ErrMissingOfferFields) {
				return writeError(c, fiber.StatusBadRequest,
					"Les champs obligatoires (titre, description, entreprise, localisation) sont manquants.")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(messagePayload{Message: "Offre importée avec succès", JobOfferID: offer.ID})
	}
}

// ListImportedOffers returns the caller's imported offers, newest first.
func ListImportedOffers(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offers, err := svc.ListImported(c.UserContext(), middleware.CurrentSession(c).UserID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(offers)
	}
}

// GetOffer godoc
// @Summary Fetch one imported offer
// @Tags offers
// @Produce json
// @Param offerId path string true "Offer ID"
// @Success 200 {object} model.JobOffer
// @Failure 404 {object} errorPayload
// @Router /api/offers/{offerId} [get]
func GetOffer(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offer, err := svc.Get(c.UserContext(), middleware.CurrentSession(c).UserID, c.Params("offerId"))
		if errors.Is(err, service.ErrNotFound) {
			return writeError(c, fiber.StatusNotFound, "Offre non trouvée ou non autorisée")
		}
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(offer)
	}
}
