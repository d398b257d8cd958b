package dberrors_test

import (
	"errors"
	"fmt"
	"testing"

	jujuerrors "github.com/juju/errors"
	"github.com/maxatome/go-testdeep/td"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
)

type runtime bool

func (r runtime) Initialized() bool { return bool(r) }

type conn struct {
	live     bool
	code     int
	message  string
	sqlState string
	queried  bool
}

func (c *conn) Live() bool { return c.live }

func (c *conn) LastErrorCode() int {
	c.queried = true
	return c.code
}

func (c *conn) LastErrorMessage() string { return c.message }

type stateConn struct {
	*conn
}

func (c stateConn) SQLState() string { return c.sqlState }

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		message  string
		expected *dberrors.ClassifiedError
	}{
		{
			name:     "no such table",
			code:     1146,
			message:  "Table 'test.nope' doesn't exist",
			expected: &dberrors.ClassifiedError{Category: category.ProgrammingError, Code: 1146, Message: "Table 'test.nope' doesn't exist"},
		},
		{
			name:     "duplicate entry",
			code:     1062,
			message:  "Duplicate entry '1' for key 'PRIMARY'",
			expected: &dberrors.ClassifiedError{Category: category.IntegrityError, Code: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"},
		},
		{
			name:     "out of range value",
			code:     1264,
			message:  "Out of range value for column 'a' at row 1",
			expected: &dberrors.ClassifiedError{Category: category.DataError, Code: 1264, Message: "Out of range value for column 'a' at row 1"},
		},
		{
			name:     "not supported yet",
			code:     1235,
			message:  "This version of MySQL doesn't yet support 'LIMIT & IN/ALL/ANY/SOME subquery'",
			expected: &dberrors.ClassifiedError{Category: category.NotSupportedError, Code: 1235, Message: "This version of MySQL doesn't yet support 'LIMIT & IN/ALL/ANY/SOME subquery'"},
		},
		{
			name:     "no error",
			code:     0,
			message:  "",
			expected: &dberrors.ClassifiedError{Category: category.InterfaceError, Code: 0, Message: ""},
		},
		{
			name:     "server gone away",
			code:     dberrors.CRServerGoneError,
			message:  "MySQL server has gone away",
			expected: &dberrors.ClassifiedError{Category: category.OperationalError, Code: 2006, Message: "MySQL server has gone away"},
		},
		{
			name:     "global range",
			code:     28,
			message:  "No space left on device",
			expected: &dberrors.ClassifiedError{Category: category.InternalError, Code: 28, Message: "No space left on device"},
		},
		{
			name:     "whack",
			code:     3024,
			message:  "Query execution was interrupted",
			expected: &dberrors.ClassifiedError{Category: category.InterfaceError, Code: -1, Message: "error totally whack"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td.Cmp(t, dberrors.Classify(true, tt.code, tt.message, true), tt.expected)
		})
	}
}

func TestNotInitialized(t *testing.T) {
	expected := &dberrors.ClassifiedError{Category: category.InternalError, Code: -1, Message: "server not initialized"}

	for _, code := range []int{0, 1062, 1146, 5000, -1} {
		td.Cmp(t, dberrors.Classify(false, code, "ignored", true), expected)
		td.Cmp(t, dberrors.Classify(true, code, "ignored", false), expected)
		td.Cmp(t, dberrors.Classify(false, code, "ignored", false), expected)
	}
}

func TestTableEntriesPassThrough(t *testing.T) {
	for _, e := range dberrors.CurrentTable().Entries() {
		msg := fmt.Sprintf("message for %d", e.Code)
		ce := dberrors.Classify(true, e.Code, msg, true)
		assert.Equal(t, e.Category, ce.Category, "code %d", e.Code)
		assert.Equal(t, e.Code, ce.Code)
		assert.Equal(t, msg, ce.Message)
	}
}

func TestRangeFallback(t *testing.T) {
	table := dberrors.CurrentTable()
	for code := 1; code <= dberrors.CRMaxError; code++ {
		if _, found := table.Lookup(code); found {
			continue
		}
		ce := dberrors.Classify(true, code, "unmapped", true)
		if code < dberrors.ERErrorFirst {
			require.Equal(t, category.InternalError, ce.Category, "code %d", code)
		} else {
			require.Equal(t, category.OperationalError, ce.Category, "code %d", code)
		}
		require.Equal(t, code, ce.Code)
		require.Equal(t, "unmapped", ce.Message)
	}

	td.Cmp(t, dberrors.Classify(true, -12, "negative", true).Category, category.InternalError)
}

func TestWhack(t *testing.T) {
	for _, code := range []int{dberrors.CRMaxError + 1, 3000, 50000, 1 << 30} {
		td.Cmp(t, dberrors.Classify(true, code, "anything", true),
			&dberrors.ClassifiedError{Category: category.InterfaceError, Code: -1, Message: dberrors.MessageWhack})
	}
	td.Cmp(t, dberrors.Classify(true, dberrors.CRMaxError, "edge", true).Category, category.OperationalError)
}

func TestClassifyConn(t *testing.T) {
	c := &conn{live: true, code: 1062, message: "Duplicate entry"}
	td.Cmp(t, dberrors.ClassifyConn(runtime(true), c),
		&dberrors.ClassifiedError{Category: category.IntegrityError, Code: 1062, Message: "Duplicate entry"})

	notInit := &dberrors.ClassifiedError{Category: category.InternalError, Code: -1, Message: dberrors.MessageNotInitialized}

	c = &conn{live: true, code: 1062}
	td.Cmp(t, dberrors.ClassifyConn(runtime(false), c), notInit)
	td.CmpFalse(t, c.queried, "connection must not be queried when the runtime is down")

	c = &conn{live: false, code: 1062}
	td.Cmp(t, dberrors.ClassifyConn(runtime(true), c), notInit)
	td.CmpFalse(t, c.queried)

	td.Cmp(t, dberrors.ClassifyConn(nil, &conn{live: true}), notInit)
	td.Cmp(t, dberrors.ClassifyConn(runtime(true), nil), notInit)

	sc := stateConn{&conn{live: true, code: 1264, message: "Out of range", sqlState: "22003"}}
	td.Cmp(t, dberrors.ClassifyConn(runtime(true), sc),
		&dberrors.ClassifiedError{Category: category.DataError, Code: 1264, SQLState: "22003", Message: "Out of range"})

	sc = stateConn{&conn{live: true, code: 0, message: "no error", sqlState: "00000"}}
	td.Cmp(t, dberrors.ClassifyConn(runtime(true), sc),
		&dberrors.ClassifiedError{Category: category.InterfaceError, Code: 0, Message: "no error"})
}

func TestCategoryMatching(t *testing.T) {
	var err error = dberrors.Classify(true, dberrors.ERDupEntry, "Duplicate entry", true)
	wrapped := fmt.Errorf("insert user: %w", err)

	assert.True(t, errors.Is(wrapped, category.IntegrityError))
	assert.True(t, errors.Is(wrapped, category.DatabaseError))
	assert.True(t, errors.Is(wrapped, category.Error))
	assert.True(t, errors.Is(wrapped, category.BaseError))
	assert.False(t, errors.Is(wrapped, category.DataError))
	assert.False(t, errors.Is(wrapped, category.InterfaceError))
	assert.False(t, errors.Is(wrapped, category.Warning))

	c, ok := dberrors.CategoryOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, category.IntegrityError, c)

	_, ok = dberrors.CategoryOf(errors.New("plain"))
	assert.False(t, ok)

	c, ok = dberrors.CategoryOf(jujuerrors.Annotate(jujuerrors.NewAlreadyExists(err, ""), "insert user"))
	assert.True(t, ok)
	assert.Equal(t, category.IntegrityError, c)

	_, ok = dberrors.CategoryOf(jujuerrors.Annotate(jujuerrors.New("plain"), "insert user"))
	assert.False(t, ok)

	_, ok = dberrors.CategoryOf(nil)
	assert.False(t, ok)

	assert.Equal(t, "IntegrityError 1062: Duplicate entry", err.Error())
}

func TestConcurrentInit(t *testing.T) {
	dberrors.ResetTable()
	defer dberrors.ResetTable()

	override := dberrors.Entry{Code: 1500, Category: category.DataError}

	var g errgroup.Group
	successes := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			if err := dberrors.Init(override); err == nil {
				successes <- struct{}{}
			}
			return nil
		})
		g.Go(func() error {
			// readers see either the lazily installed builtin table or the full one, never a partial table
			n := dberrors.CurrentTable().Len()
			if n != len(dberrors.BuiltinEntries()) && n != len(dberrors.BuiltinEntries())+1 {
				return fmt.Errorf("unexpected table size %d", n)
			}
			if c := dberrors.Classify(true, dberrors.ERNoSuchTable, "", true).Category; c != category.ProgrammingError {
				return fmt.Errorf("unexpected category %s", c)
			}
			return nil
		})
	}
	require.Nil(t, g.Wait())
	close(successes)

	assert.LessOrEqual(t, len(successes), 1)
}

func TestClassifiedCounter(t *testing.T) {
	before := testutil.ToFloat64(dberrors.ClassifiedCounter("NotSupportedError"))
	dberrors.Classify(true, dberrors.ERFeatureDisabled, "disabled", true)
	dberrors.Classify(true, dberrors.ERUnknownStorageEngine, "unknown engine", true)
	td.Cmp(t, testutil.ToFloat64(dberrors.ClassifiedCounter("NotSupportedError")), before+2)
}
