// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vhlong/telegate/internal/platform/request"
	"github.com/vhlong/telegate/internal/platform/respond"
	"github.com/vhlong/telegate/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the address-book endpoints. The router is expected
// to be nested under /accounts/{accountID}/contacts.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listContacts)
	router.Post("/delete", handler.deleteContacts)
}

type deleteContactsPayload struct {
	ContactIDs []int64 `json:"contact_ids"`
}

type deleteContactsResponse struct {
	Removed int `json:"removed"`
}

func (handler *Handler) listContacts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	contacts, meta, err := handler.service.ListContacts(
		request.Context(), userID, requestutil.ID(request, "accountID"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, contacts, meta)
}

func (handler *Handler) deleteContacts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload deleteContactsPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	removed, err := handler.service.DeleteContacts(
		request.Context(), userID, requestutil.ID(request, "accountID"), payload.ContactIDs,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, deleteContactsResponse{Removed: removed})
}
