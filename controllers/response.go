package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-foodorder/services"
	"go-foodorder/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requestTimeout bounds the database work of one request
const requestTimeout = 10 * time.Second

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	utils.WriteJSON(w, status, v)
}

// writeError maps a service error to its status. Internal causes are logged, never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	se, ok := services.AsError(err)
	if !ok {
		se = &services.Error{Kind: services.KindInternal, Message: "internal server error", Err: err}
	}
	status := se.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		utils.WithCtx(r.Context()).Error("request failed", "kind", se.Kind, "error", err)
	}
	utils.WriteMessage(w, status, se.Message)
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewError(services.KindValidation, "invalid input")
	}
	return nil
}

func decodeBody(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return services.NewError(services.KindValidation, "invalid input")
	}
	return nil
}

// pathID parses the {id} route variable. An id that cannot exist is reported as not found.
func pathID(r *http.Request, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		return primitive.NilObjectID, services.NewError(services.KindNotFound, what+" not found")
	}
	return id, nil
}
