// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package account

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
	router.Get("/", handler.listAccounts)
	router.Post("/", handler.linkAccount)
	router.Get("/{accountID}", handler.getAccount)
	router.Patch("/{accountID}", handler.updateAccount)
	router.Delete("/{accountID}", handler.unlinkAccount)
}

type linkAccountPayload struct {
	PhoneNumber string  `json:"phone_number"`
	DisplayName *string `json:"display_name,omitempty"`
	SessionKey  string  `json:"session_key"`
}

type updateAccountPayload struct {
	DisplayName *string `json:"display_name,omitempty"`
	SessionKey  string  `json:"session_key,omitempty"`
	IsActive    bool    `json:"is_active"`
}

func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accounts, err := handler.service.ListAccounts(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, accounts)
}

func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.GetAccount(request.Context(), userID, requestutil.ID(request, "accountID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) linkAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload linkAccountPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account := &Account{
		UserID:      userID,
		PhoneNumber: payload.PhoneNumber,
		DisplayName: payload.DisplayName,
		SessionKey:  payload.SessionKey,
	}
	if err := handler.service.LinkAccount(request.Context(), account); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, account)
}

func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateAccountPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account := &Account{
		ID:          requestutil.ID(request, "accountID"),
		DisplayName: payload.DisplayName,
		SessionKey:  payload.SessionKey,
		IsActive:    payload.IsActive,
	}
	if err := handler.service.UpdateAccount(request.Context(), userID, account); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}

func (handler *Handler) unlinkAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UnlinkAccount(request.Context(), userID, requestutil.ID(request, "accountID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
