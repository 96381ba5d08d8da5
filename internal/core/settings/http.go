// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vhlong/telegate/internal/platform/request"
	"github.com/vhlong/telegate/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getSettings)
	router.Put("/", handler.updateSettings)
}

func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.GetSettings(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}

func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var settings Settings
	if err := requestutil.DecodeJSON(request, &settings); err != nil {
		respond.Error(writer, request, err)
		return
	}
	settings.UserID = userID

	if err := handler.service.UpdateSettings(request.Context(), &settings); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settings)
}
