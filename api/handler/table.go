package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ovh/mysqlerr/db/dberrors"
)

// ListTable returns the entries of the installed classification table, sorted by code
func ListTable(c *gin.Context) ([]dberrors.Entry, error) {
	return dberrors.CurrentTable().Entries(), nil
}
