package category

import (
	"strings"
)

// Category is one node of the DB-API error tree.
// The set is closed: values outside of the declared constants are invalid.
type Category int

// enumerate all categories, parents first
const (
	BaseError Category = iota
	Warning
	Error
	InterfaceError
	DatabaseError
	DataError
	OperationalError
	IntegrityError
	InternalError
	ProgrammingError
	NotSupportedError

	count
)

// none marks the parent of the root
const none Category = -1

type node struct {
	name        string
	parent      Category
	description string
}

var tree = [count]node{
	BaseError: {
		name:        "MySQLError",
		parent:      none,
		description: "Exception related to operation with MySQL.",
	},
	Warning: {
		name:        "Warning",
		parent:      BaseError,
		description: "Exception raised for important warnings like data truncations while inserting, etc.",
	},
	Error: {
		name:        "Error",
		parent:      BaseError,
		description: "Exception that is the base class of all other error exceptions (not Warning).",
	},
	InterfaceError: {
		name:        "InterfaceError",
		parent:      Error,
		description: "Exception raised for errors that are related to the database interface rather than the database itself.",
	},
	DatabaseError: {
		name:        "DatabaseError",
		parent:      Error,
		description: "Exception raised for errors that are related to the database.",
	},
	DataError: {
		name:        "DataError",
		parent:      DatabaseError,
		description: "Exception raised for errors that are due to problems with the processed data like division by zero, numeric value out of range, etc.",
	},
	OperationalError: {
		name:   "OperationalError",
		parent: DatabaseError,
		description: "Exception raised for errors that are related to the database's operation and not necessarily under the control of the programmer, " +
			"e.g. an unexpected disconnect occurs, the data source name is not found, a transaction could not be processed, " +
			"a memory allocation error occurred during processing, etc.",
	},
	IntegrityError: {
		name:        "IntegrityError",
		parent:      DatabaseError,
		description: "Exception raised when the relational integrity of the database is affected, e.g. a foreign key check fails, duplicate key, etc.",
	},
	InternalError: {
		name:        "InternalError",
		parent:      DatabaseError,
		description: "Exception raised when the database encounters an internal error, e.g. the cursor is not valid anymore, the transaction is out of sync, etc.",
	},
	ProgrammingError: {
		name:   "ProgrammingError",
		parent: DatabaseError,
		description: "Exception raised for programming errors, e.g. table not found or already exists, syntax error in the SQL statement, " +
			"wrong number of parameters specified, etc.",
	},
	NotSupportedError: {
		name:   "NotSupportedError",
		parent: DatabaseError,
		description: "Exception raised in case a method or database API was used which is not supported by the database, " +
			"e.g. requesting a .rollback() on a connection that does not support transaction or has transactions turned off.",
	},
}

// byName indexes categories by their exported name, lowercased
var byName = func() map[string]Category {
	m := make(map[string]Category, count)
	for c := BaseError; c < count; c++ {
		m[strings.ToLower(tree[c].name)] = c
	}
	return m
}()

// Valid asserts that c is one of the declared categories
func (c Category) Valid() bool {
	return c >= BaseError && c < count
}

// String returns the exported name of the category
func (c Category) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return tree[c].name
}

// Error makes a Category usable as a target for errors.Is
func (c Category) Error() string {
	return c.String()
}

// Description returns the documentation text of the category.
func (c Category) Description() string {
	if !c.Valid() {
		return ""
	}
	return tree[c].description
}

// Parent returns the direct ancestor of c.
// The second return value is false for the root and for invalid values.
func (c Category) Parent() (Category, bool) {
	if !c.Valid() || tree[c].parent == none {
		return none, false
	}
	return tree[c].parent, true
}

// IsA reports whether c is ancestor itself or one of its descendants
func (c Category) IsA(ancestor Category) bool {
	if !c.Valid() || !ancestor.Valid() {
		return false
	}
	for cur, ok := c, true; ok; cur, ok = cur.Parent() {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Ancestors returns the path from c up to the root, c excluded
func (c Category) Ancestors() []Category {
	var ret []Category
	for cur, ok := c.Parent(); ok; cur, ok = cur.Parent() {
		ret = append(ret, cur)
	}
	return ret
}

// MarshalText encodes a category as its exported name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category from its exported name (case insensitive)
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
