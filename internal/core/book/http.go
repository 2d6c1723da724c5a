// Copyright (c) 2026 Booknotes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/booknotes/internal/platform/request"
	"github.com/taibuivan/booknotes/internal/platform/respond"
	"github.com/taibuivan/booknotes/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the book endpoints on a router scoped to /books.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Post("/", handler.createBook)
	router.Get("/{id}", handler.getBook)
	router.Put("/{id}", handler.updateBook)
	router.Patch("/{id}", handler.patchBook)
	router.Delete("/{id}", handler.deleteBook)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	page, limit := pagination.FromRequest(request)
	query := request.URL.Query()

	books, err := handler.service.List(request.Context(), Filter{
		Status: Status(query.Get(FieldStatus)),
		Search: query.Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetByID(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, input, ok := handler.decodeUpdate(writer, request)
	if !ok {
		return
	}

	book, err := handler.service.Update(request.Context(), bookID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) patchBook(writer http.ResponseWriter, request *http.Request) {
	bookID, input, ok := handler.decodeUpdate(writer, request)
	if !ok {
		return
	}

	book, err := handler.service.Patch(request.Context(), bookID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// decodeUpdate parses the id and the update body shared by PUT and PATCH.
// It writes the error response itself and reports false on failure.
func (handler *Handler) decodeUpdate(writer http.ResponseWriter, request *http.Request) (int, *UpdateRequest, bool) {
	bookID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return 0, nil, false
	}

	var input UpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return 0, nil, false
	}
	return bookID, &input, true
}
