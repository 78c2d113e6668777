// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package address

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/taibuivan/userdesk/internal/platform/middleware"
	requestutil "github.com/taibuivan/userdesk/internal/platform/request"
	"github.com/taibuivan/userdesk/internal/platform/respond"
	"github.com/taibuivan/userdesk/internal/platform/validate"
	"github.com/taibuivan/userdesk/pkg/pagination"
)

// Handler implements the address book endpoints.
type Handler struct {
	addressService *Service
}

// NewHandler constructs a new address [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{addressService: service}
}

// Routes returns a [chi.Router] with the address endpoints. All require authentication.
//
// # Endpoints
//   - GET    /              : Filtered, paginated listing.
//   - GET    /title/{title} : Every address with a title, and the count.
//   - POST   /              : Creates an address.
//   - PUT    /{addressID}   : Partially updates an address.
//   - DELETE /{addressID}   : Deletes an address.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/title/{title}", handler.listByTitle)
	router.Post("/", handler.create)
	router.Put("/{addressID}", handler.update)
	router.Delete("/{addressID}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	Title        string `json:"title"`
	HouseNumber  string `json:"house_number"`
	BuildingName string `json:"building_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	IsDefault    bool   `json:"is_default"`
}

func (input createRequest) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.Required, validation.Length(1, 50)),
		validation.Field(&input.HouseNumber, validation.Required, validation.Length(1, 20)),
		validation.Field(&input.BuildingName, validation.Length(0, 100)),
		validation.Field(&input.AddressLine1, validation.Required, validation.Length(1, 200)),
		validation.Field(&input.AddressLine2, validation.Length(0, 200)),
		validation.Field(&input.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&input.State, validation.Required, validation.Length(1, 100)),
		validation.Field(&input.ZipCode, validation.Required, validation.Length(1, 10), validate.Digits),
	)
}

type updateRequest struct {
	Title        *string `json:"title"`
	HouseNumber  *string `json:"house_number"`
	BuildingName *string `json:"building_name"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	IsDefault    *bool   `json:"is_default"`
}

func (input updateRequest) Validate() error {
	return validation.ValidateStruct(&input,
		validation.Field(&input.Title, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&input.HouseNumber, validation.NilOrNotEmpty, validation.Length(1, 20)),
		validation.Field(&input.BuildingName, validation.Length(0, 100)),
		validation.Field(&input.AddressLine1, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&input.AddressLine2, validation.Length(0, 200)),
		validation.Field(&input.City, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&input.State, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&input.ZipCode, validation.NilOrNotEmpty, validation.Length(1, 10), validate.Digits),
	)
}

/*
GET /api/v1/addresses

Query:
  - title, city, state: exact-match filters
  - page, limit: pagination

Response:
  - 200: Paginated []Address, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		Title: requestutil.Query(request, "title"),
		City:  requestutil.Query(request, "city"),
		State: requestutil.Query(request, "state"),
	}

	addresses, meta, err := handler.addressService.List(request.Context(), accountID, filter, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, addresses, meta)
}

/*
GET /api/v1/addresses/title/{title}

Response:
  - 200: TitleResult {count, addresses}
*/
func (handler *Handler) listByTitle(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.addressService.ListByTitle(request.Context(), accountID, requestutil.Param(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
POST /api/v1/addresses

Response:
  - 201: Address
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	address, err := handler.addressService.Create(request.Context(), accountID, CreateInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, address)
}

/*
PUT /api/v1/addresses/{addressID}

Description: Only the fields present in the body are changed.

Response:
  - 200: Address
  - 404: NOT_FOUND (missing, or owned by another account)
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	address, err := handler.addressService.Update(request.Context(), accountID, requestutil.Param(request, "addressID"), Patch(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, address)
}

/*
DELETE /api/v1/addresses/{addressID}

Response:
  - 204: No Content
  - 404: NOT_FOUND
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.addressService.Delete(request.Context(), accountID, requestutil.Param(request, "addressID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
