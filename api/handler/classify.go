package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
)

// ClassifiedCategoryCtxKey is the gin context key under which Classify stores the resolved category name
const ClassifiedCategoryCtxKey = "classified_category"

type classifyIn struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Initialized and Connected describe the client state, they default to true
	Initialized *bool `json:"initialized"`
	Connected   *bool `json:"connected"`
}

// ClassifyOut is the outcome of a classification
type ClassifyOut struct {
	Category  category.Category   `json:"category"`
	Code      int                 `json:"code"`
	SQLState  string              `json:"sqlstate,omitempty"`
	Message   string              `json:"message"`
	Ancestors []category.Category `json:"ancestors"`
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Classify resolves a server error number and message into its category
func Classify(c *gin.Context, in *classifyIn) (*ClassifyOut, error) {
	ce := dberrors.Classify(boolOr(in.Initialized, true), in.Code, in.Message, boolOr(in.Connected, true))
	c.Set(ClassifiedCategoryCtxKey, ce.Category.String())
	return &ClassifyOut{
		Category:  ce.Category,
		Code:      ce.Code,
		SQLState:  ce.SQLState,
		Message:   ce.Message,
		Ancestors: ce.Category.Ancestors(),
	}, nil
}
