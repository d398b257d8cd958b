package dberrors

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"github.com/ovh/mysqlerr/category"
)

// Entry associates a server error number with a category
type Entry struct {
	Code     int               `json:"code"`
	Category category.Category `json:"category"`
}

func (e Entry) validate() error {
	if e.Code <= 0 || e.Code > CRMaxError {
		return errors.NotValidf("error code %d (must be within 1..%d)", e.Code, CRMaxError)
	}
	if !e.Category.Valid() {
		return errors.NotValidf("category %d for error code %d", int(e.Category), e.Code)
	}
	return nil
}

// builtinEntries lists the codes whose category cannot be derived from their range alone
var builtinEntries = []Entry{
	{ERDBCreateExists, category.ProgrammingError},
	{ERBadDBError, category.ProgrammingError},
	{ERBadFieldError, category.ProgrammingError},
	{ERWrongValueCount, category.ProgrammingError},
	{ERSyntaxError, category.ProgrammingError},
	{ERParseError, category.ProgrammingError},
	{ERNoSuchTable, category.ProgrammingError},
	{ERWrongDBName, category.ProgrammingError},
	{ERWrongTableName, category.ProgrammingError},
	{ERFieldSpecifiedTwice, category.ProgrammingError},
	{ERInvalidGroupFuncUse, category.ProgrammingError},
	{ERUnsupportedExtension, category.ProgrammingError},
	{ERTableMustHaveColumns, category.ProgrammingError},
	{ERCantDoThisDuringAnTransaction, category.ProgrammingError},

	{ERWarnDataTruncated, category.DataError},
	{ERWarnNullToNotnull, category.DataError},
	{ERWarnDataOutOfRange, category.DataError},
	{ERNoDefault, category.DataError},
	{ERPrimaryCantHaveNull, category.DataError},
	{ERDataTooLong, category.DataError},
	{ERDatetimeFunctionOverflow, category.DataError},

	{ERDupEntry, category.IntegrityError},
	{ERNoReferencedRow, category.IntegrityError},
	{ERNoReferencedRow2, category.IntegrityError},
	{ERRowIsReferenced, category.IntegrityError},
	{ERRowIsReferenced2, category.IntegrityError},
	{ERCannotAddForeign, category.IntegrityError},

	{ERWarningNotCompleteRollback, category.NotSupportedError},
	{ERNotSupportedYet, category.NotSupportedError},
	{ERFeatureDisabled, category.NotSupportedError},
	{ERUnknownStorageEngine, category.NotSupportedError},
}

// BuiltinEntries returns a copy of the default classification entries
func BuiltinEntries() []Entry {
	ret := make([]Entry, len(builtinEntries))
	copy(ret, builtinEntries)
	return ret
}

// Table is an immutable mapping from error codes to categories
type Table struct {
	entries map[int]category.Category
}

// NewTable validates every entry, then builds the table.
// Nothing is built if any entry is invalid. When a code appears more than once,
// the last entry wins.
func NewTable(entries ...Entry) (*Table, error) {
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}
	return buildTable(entries), nil
}

func buildTable(entries []Entry) *Table {
	m := make(map[int]category.Category, len(entries))
	for _, e := range entries {
		m[e.Code] = e.Category
	}
	return &Table{entries: m}
}

// Lookup returns the category associated with code, if any
func (t *Table) Lookup(code int) (category.Category, bool) {
	c, ok := t.entries[code]
	return c, ok
}

// Len returns the number of distinct codes in the table
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the content of the table, sorted by code
func (t *Table) Entries() []Entry {
	ret := make([]Entry, 0, len(t.entries))
	for code, c := range t.entries {
		ret = append(ret, Entry{Code: code, Category: c})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Code < ret[j].Code })
	return ret
}

var (
	tableMut  sync.Mutex
	installed atomic.Pointer[Table]
)

// Init builds the process-wide classification table from the builtin entries
// followed by overrides, and installs it.
// It must run before concurrent classification starts; it can succeed only once.
// On failure nothing is installed and Init may be called again.
func Init(overrides ...Entry) error {
	tableMut.Lock()
	defer tableMut.Unlock()

	if installed.Load() != nil {
		return errors.AlreadyExistsf("classification table")
	}

	entries := append(BuiltinEntries(), overrides...)
	t, err := NewTable(entries...)
	if err != nil {
		return errors.Annotate(err, "failed to build classification table")
	}
	installed.Store(t)

	logrus.Infof("[Classification] Installed %d error codes (%d overrides)", t.Len(), len(overrides))
	return nil
}

// CurrentTable returns the installed table.
// The builtin table gets installed on first use if Init was never called.
func CurrentTable() *Table {
	if t := installed.Load(); t != nil {
		return t
	}

	tableMut.Lock()
	defer tableMut.Unlock()

	if t := installed.Load(); t != nil {
		return t
	}
	t := buildTable(builtinEntries)
	installed.Store(t)
	return t
}
