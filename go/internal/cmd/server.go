package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"

	"github.com/cLEANTHUGGcODES/lcs-fantasy-sub001/go/internal/httpapi"
)

func setupServer(services *Services, config *Config) *http.Server {
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	handler := c.Handler(httpapi.Routes(services.HTTP, services.Users))

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Server.Port),
		Handler: handler,
	}
}
