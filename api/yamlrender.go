package api

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/gin-gonic/gin"
	"github.com/markusthoemmes/goautoneg"
)

const (
	acceptHeader = "Accept"
	jsonFormat   = "json"
	yamlFormat   = "x-yaml"
)

// negotiateFormat picks the first of JSON or YAML accepted by the client, JSON by default
func negotiateFormat(accept string) string {
	for _, format := range goautoneg.ParseAccept(accept) {
		if format.Type != "application" {
			continue
		}
		switch format.SubType {
		case jsonFormat, yamlFormat:
			return format.SubType
		}
	}
	return jsonFormat
}

// yamljsonRenderHook renders the payload as JSON or YAML, depending on the Accept request header
func yamljsonRenderHook(c *gin.Context, statusCode int, payload interface{}) {
	status := statusCode
	if c.Writer.Written() {
		status = c.Writer.Status()
	}

	switch {
	case payload == nil:
		c.String(status, "")
	case negotiateFormat(c.Request.Header.Get(acceptHeader)) == yamlFormat:
		out, err := yaml.Marshal(payload)
		if err != nil {
			c.JSON(500, map[string]string{"message": fmt.Sprintf("error while marshalling: %s", err)})
			return
		}
		c.Data(status, "application/"+yamlFormat, out)
	case gin.IsDebugging():
		c.IndentedJSON(status, payload)
	default:
		c.JSON(status, payload)
	}
}
