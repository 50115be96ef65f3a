package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/scrap_remaster/vfs"
)

var ServerDirectory vfs.Directory

func NewRouter(d vfs.Directory) http.Handler {
	ServerDirectory = d

	r := mux.NewRouter()
	r.HandleFunc("/json/fvf/{fvf}", HandlerAjaxFVF).Methods("GET")
	r.HandleFunc("/json/pack", HandlerAjaxPack).Methods("GET")
	r.HandleFunc("/json/pack/{file:.+}", HandlerAjaxPackFile).Methods("GET")
	r.HandleFunc("/dump/pack/{file:.+}", HandlerDumpPackFile).Methods("GET")
	r.HandleFunc("/gltf/pack/{file:.+}", HandlerGLTFPackFile).Methods("GET")

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)
}

func StartServer(addr string, d vfs.Directory) error {
	h := handlers.LoggingHandler(os.Stdout, NewRouter(d))

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
