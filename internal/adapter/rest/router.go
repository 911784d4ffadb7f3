package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Router wires the service handlers under /api with the shared middleware
// stack. CORS is open because the expected consumer is a browser SPA served
// from elsewhere.
func Router(accounts *AccountService, lessons *LessonService, progress *ProgressService, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(TokenMiddleware)
	api.HandleFunc("/register", accounts.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", accounts.Login).Methods(http.MethodPost)
	api.HandleFunc("/lessons", lessons.List).Methods(http.MethodGet)
	api.HandleFunc("/lessons/{lesson_id}", lessons.Get).Methods(http.MethodGet)
	api.HandleFunc("/lessons/{lesson_id}/quiz", progress.SubmitQuiz).Methods(http.MethodPost)
	api.HandleFunc("/profile", accounts.Profile).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusNotFound, errorEnvelope{
			Error: ErrorBody{Kind: KindNotFound, Message: "no such route"},
		})
	})

	var handler http.Handler = r
	handler = RecoverMiddleware(logger)(handler)
	handler = AccessLogMiddleware(logger)(handler)
	handler = cors.AllowAll().Handler(handler)
	return handler
}
