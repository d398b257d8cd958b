package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/fizz"

	"github.com/ovh/mysqlerr/api/handler"
)

var requestIDHeader = http.CanonicalHeaderKey("X-Request-Id")

// classifiedCategoryCtxKey holds the category resolved by the classify handler
const classifiedCategoryCtxKey = handler.ClassifiedCategoryCtxKey

func auditLogsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	requestDuration := time.Since(start)

	q, _ := url.QueryUnescape(c.Request.URL.RawQuery)

	fields := logrus.Fields{
		"status":       c.Writer.Status(),
		"method":       c.Request.Method,
		"path":         c.Request.URL.Path,
		"query":        q,
		"user_agent":   c.Request.UserAgent(),
		"duration":     requestDuration.Seconds(),
		"duration_ms":  requestDuration.Milliseconds(),
		"request_host": c.Request.Host,
		"remote_ip":    c.ClientIP(),
		"request_id":   c.Request.Header.Get(requestIDHeader),
		"log_type":     "api",
	}
	if op, _ := fizz.OperationFromContext(c); op != nil {
		fields["action"] = op.ID
	}
	if category := c.GetString(classifiedCategoryCtxKey); category != "" {
		fields["category"] = category
	}

	errs := c.Errors.Errors()

	if len(errs) > 0 {
		fields["success"] = false
		logrus.WithFields(fields).WithError(
			errors.New(strings.Join(errs, "\n")),
		).Error("error")
	} else {
		fields["success"] = true
		logrus.WithFields(fields).Info("success")
	}
}

func ajaxHeadersMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Type")

	c.Next()
}
