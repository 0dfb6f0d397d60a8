package api

import (
	"github.com/gorilla/mux"
)

func SetupRoutes(listHandler *ListHandler, itemHandler *ItemHandler) *mux.Router {
	r := mux.NewRouter()

	r.Use(CORSMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.HandleFunc("/api/v1/types/{type}/items", listHandler.ListItems).Methods("GET")
	r.HandleFunc("/api/v1/types/{type}/columns", listHandler.GetColumns).Methods("GET")

	r.HandleFunc("/api/v1/types/{type}/items", itemHandler.CreateItem).Methods("POST")
	r.HandleFunc("/api/v1/items/{itemID}/attributes/{key}", itemHandler.PutAttribute).Methods("PUT")
	r.HandleFunc("/api/v1/items/{itemID}/attributes/{key}", itemHandler.DeleteAttribute).Methods("DELETE")

	return r
}
