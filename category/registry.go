package category

import (
	"github.com/juju/errors"

	"github.com/ovh/mysqlerr/pkg/utils"
)

// Parse returns the category registered under name.
// Matching is case insensitive; "BaseError" is accepted as an alias of the root.
func Parse(name string) (Category, error) {
	n := utils.NormalizeName(name)
	if n == "baseerror" {
		return BaseError, nil
	}
	c, ok := byName[n]
	if !ok {
		return none, errors.NotFoundf("category %q", name)
	}
	return c, nil
}

// All returns every category, parents before their children
func All() []Category {
	ret := make([]Category, 0, count)
	for c := BaseError; c < count; c++ {
		ret = append(ret, c)
	}
	return ret
}

// Children returns the direct descendants of c
func (c Category) Children() []Category {
	var ret []Category
	for _, child := range All() {
		if p, ok := child.Parent(); ok && p == c {
			ret = append(ret, child)
		}
	}
	return ret
}

// Leaves returns the categories that have no descendant
func Leaves() []Category {
	var ret []Category
	for _, c := range All() {
		if len(c.Children()) == 0 {
			ret = append(ret, c)
		}
	}
	return ret
}
