package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/upsidescan/potential-tracker/assets"
	"github.com/upsidescan/potential-tracker/history"
	"github.com/upsidescan/potential-tracker/stream"
	"github.com/upsidescan/potential-tracker/tracker"
)

type Server struct {
	port           string
	trackerService *tracker.Service
	streamService  *stream.Service
	assetsClient   *assets.Client
	historyService *history.Service
	server         *http.Server
}

func New(port string, trackerService *tracker.Service, streamService *stream.Service, assetsClient *assets.Client, historyService *history.Service) *Server {
	return &Server{
		port:           port,
		trackerService: trackerService,
		streamService:  streamService,
		assetsClient:   assetsClient,
		historyService: historyService,
	}
}

// Router builds the HTTP route table
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/board", s.handleBoard).Methods("GET")
	router.HandleFunc("/api/v1/board/prices", s.handleBoardPrices).Methods("GET")
	router.HandleFunc("/api/v1/chart", s.handleChart).Methods("GET")
	router.HandleFunc("/api/v1/ranges", s.handleRanges).Methods("GET")

	router.HandleFunc("/api/v1/refresh", s.handleRefresh).Methods("POST")
	router.HandleFunc("/api/v1/select", s.handleSelect).Methods("POST")
	router.HandleFunc("/api/v1/range", s.handleRange).Methods("POST")

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
