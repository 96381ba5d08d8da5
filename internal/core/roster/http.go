// Copyright (c) 2026 Telegate. All rights reserved.
// Author: long.vh.dev@gmail.com

package roster

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vhlong/telegate/internal/platform/apperr"
	requestutil "github.com/vhlong/telegate/internal/platform/request"
	"github.com/vhlong/telegate/internal/platform/respond"
	"github.com/vhlong/telegate/internal/platform/validate"
	"github.com/vhlong/telegate/internal/telegram"
)

// SessionDirectory resolves an account id owned by the authenticated user to
// its Telegram session key. Implemented by the account service.
type SessionDirectory interface {
	SessionKey(ctx context.Context, userID, accountID string) (string, error)
}

// OptionsSource supplies the user's stored pipeline preferences. Implemented
// by the settings service.
type OptionsSource interface {
	OptionsFor(ctx context.Context, userID string) (Options, error)
}

type Handler struct {
	service  *Service
	sessions SessionDirectory
	settings OptionsSource
}

func NewHandler(service *Service, sessions SessionDirectory, settings OptionsSource) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		settings: settings,
	}
}

// RegisterRoutes mounts the group-membership endpoints. The router is
// expected to be nested under /accounts/{accountID}/groups.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/{groupID}/members/bulk", handler.bulkAddMembers)
}

// bulkAddPayload accepts exactly one input shape: free text, CSV content, or
// contact-picker selections.
type bulkAddPayload struct {
	GroupKind string          `json:"group_kind"`
	Text      string          `json:"text,omitempty"`
	CSV       string          `json:"csv,omitempty"`
	FileName  string          `json:"file_name,omitempty"`
	Contacts  []PickedContact `json:"contacts,omitempty"`
	Options   *optionsPayload `json:"options,omitempty"`
}

// optionsPayload overrides the user's stored preferences for a single run.
// Absent fields keep the stored value.
type optionsPayload struct {
	CountryCode *string `json:"country_code,omitempty"`
	DelayMs     *int    `json:"delay_ms,omitempty"`
	AutoCleanup *bool   `json:"auto_cleanup,omitempty"`
	Strict      *bool   `json:"strict,omitempty"`
}

// bulkAddResponse pairs the run summary with the entries that never entered
// the pipeline, so the dashboard can show bad lines next to the outcome.
type bulkAddResponse struct {
	*BulkAddMembersResult
	InvalidEntries []Candidate `json:"invalid_entries,omitempty"`
}

func (handler *Handler) bulkAddMembers(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accountID := requestutil.ID(request, "accountID")
	groupID, err := strconv.ParseInt(requestutil.ID(request, "groupID"), 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Group id must be numeric"))
		return
	}

	var payload bulkAddPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required("group_kind", payload.GroupKind).
		OneOf("group_kind", payload.GroupKind,
			string(telegram.GroupBasic), string(telegram.GroupSuper), string(telegram.GroupSecret)).
		Custom("input", countSources(payload) != 1,
			"Provide exactly one of text, csv, or contacts")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.FileName != "" {
		if err := ValidateFileName(payload.FileName); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	options, err := handler.settings.OptionsFor(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	options = applyOverrides(options, payload.Options)

	sessionKey, err := handler.sessions.SessionKey(request.Context(), userID, accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	candidates := parsePayload(payload, options)

	result, err := handler.service.ProcessBulkAdd(request.Context(), BulkAddInput{
		SessionKey: sessionKey,
		UserID:     userID,
		AccountID:  accountID,
		GroupID:    groupID,
		GroupKind:  telegram.GroupKind(payload.GroupKind),
		Candidates: candidates,
		Options:    options,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bulkAddResponse{
		BulkAddMembersResult: result,
		InvalidEntries:       invalidEntries(candidates),
	})
}

func countSources(payload bulkAddPayload) int {
	count := 0
	if payload.Text != "" {
		count++
	}
	if payload.CSV != "" {
		count++
	}
	if len(payload.Contacts) > 0 {
		count++
	}
	return count
}

func parsePayload(payload bulkAddPayload, options Options) []Candidate {
	switch {
	case payload.Text != "":
		return ParseText(payload.Text, options.DefaultCountryCode, options.StrictValidation)
	case payload.CSV != "":
		return ParseCSV(payload.CSV, options.DefaultCountryCode, options.StrictValidation)
	default:
		return FromContacts(payload.Contacts, options.DefaultCountryCode)
	}
}

func applyOverrides(options Options, overrides *optionsPayload) Options {
	if overrides == nil {
		return options
	}
	if overrides.CountryCode != nil {
		options.DefaultCountryCode = *overrides.CountryCode
	}
	if overrides.DelayMs != nil {
		options.BulkAddDelay = time.Duration(*overrides.DelayMs) * time.Millisecond
	}
	if overrides.AutoCleanup != nil {
		options.AutoCleanupContacts = *overrides.AutoCleanup
	}
	if overrides.Strict != nil {
		options.StrictValidation = *overrides.Strict
	}
	return options
}

func invalidEntries(candidates []Candidate) []Candidate {
	var invalid []Candidate
	for _, candidate := range candidates {
		if !candidate.IsValid {
			invalid = append(invalid, candidate)
		}
	}
	return invalid
}
