package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/loopfz/gadgeto/tonic/utils/jujerr"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"

	"github.com/ovh/mysqlerr"
	"github.com/ovh/mysqlerr/api/handler"
)

// Server wraps the http handler that exposes a REST API to inspect
// the error categories and classify server errors
type Server struct {
	httpHandler  *fizz.Fizz
	maxBodyBytes int64
}

// NewServer returns a new Server
func NewServer() *Server {
	return &Server{}
}

// SetMaxBodyBytes caps the size of request bodies
func (s *Server) SetMaxBodyBytes(max int64) {
	s.maxBodyBytes = max
}

// ListenAndServe launches an http server and stays blocked until
// the server is shut down by a system signal
func (s *Server) ListenAndServe() error {
	s.build()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", mysqlerr.FPort), Handler: s.httpHandler}

	go func() {
		<-stop
		logrus.Info("Shutting down...")

		if err := srv.Shutdown(context.Background()); err != nil {
			logrus.Fatal(err)
		}
	}()

	logrus.Infof("[API] Listening on port %d", mysqlerr.FPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler returns the underlying http.Handler of a Server
func (s *Server) Handler() http.Handler {
	s.build()
	return s.httpHandler
}

// build registers all routes and their corresponding handlers for the Server's API
func (s *Server) build() {
	if s.httpHandler != nil {
		return
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())
	ginEngine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router := fizz.NewFromEngine(ginEngine)
	router.Use(ajaxHeadersMiddleware, requestMetricsMiddleware, auditLogsMiddleware)

	tonic.SetErrorHook(jujerr.ErrHook)
	tonic.SetBindHook(yamlBindHook(s.maxBodyBytes))
	tonic.SetRenderHook(yamljsonRenderHook, "application/json")

	routes := router.Group("/", "Classification", "Error categories and classification of server errors")
	{
		routes.GET("/category",
			[]fizz.OperationOption{
				fizz.Summary("List error categories"),
				fizz.Description("Categories are listed from the root of the hierarchy down to its leaves."),
			},
			tonic.Handler(handler.ListCategories, 200))
		routes.GET("/category/:name",
			[]fizz.OperationOption{
				fizz.Summary("Get error category details"),
			},
			tonic.Handler(handler.GetCategory, 200))

		routes.POST("/classify",
			[]fizz.OperationOption{
				fizz.Summary("Classify a server error"),
				fizz.Description("Resolves a server error number and message into an error category."),
			},
			tonic.Handler(handler.Classify, 200))

		routes.GET("/table",
			[]fizz.OperationOption{
				fizz.Summary("List the installed classification table"),
			},
			tonic.Handler(handler.ListTable, 200))

		routes.GET("/",
			[]fizz.OperationOption{
				fizz.Summary("Redirect to /meta"),
			},
			func(c *gin.Context) {
				c.Redirect(http.StatusMovedPermanently, "/meta")
			})
		routes.GET("/meta",
			[]fizz.OperationOption{
				fizz.Summary("Display service name and version"),
			},
			tonic.Handler(rootHandler, 200))
	}

	router.GET("/unsecured/mon/ping",
		[]fizz.OperationOption{
			fizz.Summary("Assert that the service is running"),
		},
		pingHandler)
	router.GET("/unsecured/spec.json", nil, router.OpenAPI(&openapi.Info{
		Title:   mysqlerr.AppName(),
		Version: mysqlerr.Version,
	}, "json"))

	s.httpHandler = router
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

type rootOut struct {
	ApplicationName string `json:"application_name"`
	Version         string `json:"version"`
	Commit          string `json:"commit"`
}

func rootHandler(c *gin.Context) (*rootOut, error) {
	return &rootOut{
		ApplicationName: mysqlerr.AppName(),
		Version:         mysqlerr.Version,
		Commit:          mysqlerr.Commit,
	}, nil
}
