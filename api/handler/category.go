package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ovh/mysqlerr/category"
)

// CategoryOut is the public representation of an error category
type CategoryOut struct {
	Name        string              `json:"name"`
	Parent      *category.Category  `json:"parent,omitempty"`
	Description string              `json:"description"`
	Ancestors   []category.Category `json:"ancestors,omitempty"`
	Children    []category.Category `json:"children,omitempty"`
}

func newCategoryOut(c category.Category) *CategoryOut {
	out := &CategoryOut{
		Name:        c.String(),
		Description: c.Description(),
	}
	if p, ok := c.Parent(); ok {
		out.Parent = &p
	}
	return out
}

// ListCategories returns every error category, root first
func ListCategories(c *gin.Context) ([]*CategoryOut, error) {
	all := category.All()
	ret := make([]*CategoryOut, 0, len(all))
	for _, cat := range all {
		ret = append(ret, newCategoryOut(cat))
	}
	return ret, nil
}

type getCategoryIn struct {
	Name string `path:"name, required"`
}

// GetCategory returns a single category, along with its ancestors and children
func GetCategory(c *gin.Context, in *getCategoryIn) (*CategoryOut, error) {
	cat, err := category.Parse(in.Name)
	if err != nil {
		return nil, err
	}
	out := newCategoryOut(cat)
	out.Ancestors = cat.Ancestors()
	out.Children = cat.Children()
	return out, nil
}
