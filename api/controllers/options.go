package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/boutiquehq/boutique-backend/api/responses"
	"github.com/boutiquehq/boutique-backend/api/validators"
	"github.com/boutiquehq/boutique-backend/internal/catalog"
	"github.com/boutiquehq/boutique-backend/pkg/logger"
)

// optionRequest covers both colors and sizes; the value is a hex code for
// colors and a label like "XL" for sizes.
type optionRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Value string `json:"value" validate:"required,min=1,max=60"`
}

func (p optionRequest) toInput() catalog.OptionInput {
	return catalog.OptionInput{Name: p.Name, Value: p.Value}
}

// optionOps abstracts the color/size halves of the catalog service so the
// handlers below are written once.
type optionOps struct {
	param  string
	create func(ctx context.Context, ownerID string, storeID uuid.UUID, input catalog.OptionInput) (*catalog.OptionDTO, error)
	get    func(ctx context.Context, storeID, id uuid.UUID) (*catalog.OptionDTO, error)
	list   func(ctx context.Context, storeID uuid.UUID) ([]catalog.OptionDTO, error)
	update func(ctx context.Context, ownerID string, storeID, id uuid.UUID, input catalog.OptionInput) (*catalog.OptionDTO, error)
	delete func(ctx context.Context, ownerID string, storeID, id uuid.UUID) error
}

func colorOps(svc catalog.Service) optionOps {
	return optionOps{
		param:  "colorId",
		create: svc.CreateColor,
		get:    svc.GetColor,
		list:   svc.ListColors,
		update: svc.UpdateColor,
		delete: svc.DeleteColor,
	}
}

func sizeOps(svc catalog.Service) optionOps {
	return optionOps{
		param:  "sizeId",
		create: svc.CreateSize,
		get:    svc.GetSize,
		list:   svc.ListSizes,
		update: svc.UpdateSize,
		delete: svc.DeleteSize,
	}
}

func ColorCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionCreate(colorOps(svc), logg)
}
func ColorList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionList(colorOps(svc), logg)
}
func ColorDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionDetail(colorOps(svc), logg)
}
func ColorUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionUpdate(colorOps(svc), logg)
}
func ColorDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionDelete(colorOps(svc), logg)
}

func SizeCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionCreate(sizeOps(svc), logg)
}
func SizeList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionList(sizeOps(svc), logg)
}
func SizeDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionDetail(sizeOps(svc), logg)
}
func SizeUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionUpdate(sizeOps(svc), logg)
}
func SizeDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return optionDelete(sizeOps(svc), logg)
}

func optionCreate(ops optionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload optionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := ops.create(r.Context(), ownerID, storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func optionList(ops optionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := ops.list(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

func optionDetail(ops optionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, ops.param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := ops.get(r.Context(), storeID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

func optionUpdate(ops optionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, ops.param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload optionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := ops.update(r.Context(), ownerID, storeID, id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func optionDelete(ops optionOps, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := principal(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID, err := storeIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, ops.param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := ops.delete(r.Context(), ownerID, storeID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
