package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/loopfz/gadgeto/iffy"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovh/mysqlerr/api"
	"github.com/ovh/mysqlerr/category"
	"github.com/ovh/mysqlerr/db/dberrors"
)

var hdl http.Handler

func TestMain(m *testing.M) {
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.ErrorLevel)

	srv := api.NewServer()
	hdl = srv.Handler()

	os.Exit(m.Run())
}

func TestUtils(t *testing.T) {
	tester := iffy.NewTester(t, hdl)

	tester.AddCall("testMetrics", http.MethodGet, "/metrics", "").
		Checkers(iffy.ExpectStatus(200))
	tester.AddCall("testPing", http.MethodGet, "/unsecured/mon/ping", "").
		Checkers(iffy.ExpectStatus(200))
	tester.AddCall("testSpec", http.MethodGet, "/unsecured/spec.json", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("info", "title", "mysqlerr"),
		)
	tester.AddCall("testMeta", http.MethodGet, "/meta", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("application_name", "mysqlerr"),
		)

	tester.Run()
}

func TestCategories(t *testing.T) {
	tester := iffy.NewTester(t, hdl)

	tester.AddCall("listCategories", http.MethodGet, "/category", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectListLength(len(category.All())),
		)
	tester.AddCall("getCategory", http.MethodGet, "/category/IntegrityError", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("name", "IntegrityError"),
			iffy.ExpectJSONBranch("parent", "DatabaseError"),
			iffy.ExpectJSONBranch("description", category.IntegrityError.Description()),
		)
	tester.AddCall("getCategoryCaseInsensitive", http.MethodGet, "/category/databaseerror", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("name", "DatabaseError"),
			iffy.ExpectJSONBranch("parent", "Error"),
		)
	tester.AddCall("getRootCategory", http.MethodGet, "/category/MySQLError", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("name", "MySQLError"),
		)
	tester.AddCall("getUnknownCategory", http.MethodGet, "/category/TimeoutError", "").
		Checkers(iffy.ExpectStatus(404))

	tester.Run()
}

func TestClassify(t *testing.T) {
	tester := iffy.NewTester(t, hdl)

	tester.AddCall("duplicateEntry", http.MethodPost, "/classify", `{"code": 1062, "message": "Duplicate entry '1' for key 'PRIMARY'"}`).
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("category", "IntegrityError"),
			iffy.ExpectJSONBranch("code", "1062"),
			iffy.ExpectJSONBranch("message", "Duplicate entry '1' for key 'PRIMARY'"),
		)
	tester.AddCall("yamlBody", http.MethodPost, "/classify", "code: 1146\nmessage: Table 'app.nope' doesn't exist\n").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("category", "ProgrammingError"),
			iffy.ExpectJSONBranch("code", "1146"),
		)
	tester.AddCall("notInitialized", http.MethodPost, "/classify", `{"code": 1062, "message": "ignored", "initialized": false}`).
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("category", "InternalError"),
			iffy.ExpectJSONBranch("code", "-1"),
			iffy.ExpectJSONBranch("message", dberrors.MessageNotInitialized),
		)
	tester.AddCall("noConnection", http.MethodPost, "/classify", `{"code": 1062, "connected": false}`).
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("category", "InternalError"),
		)
	tester.AddCall("whack", http.MethodPost, "/classify", `{"code": 4000, "message": "anything"}`).
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("category", "InterfaceError"),
			iffy.ExpectJSONBranch("code", "-1"),
			iffy.ExpectJSONBranch("message", dberrors.MessageWhack),
		)
	tester.AddCall("noError", http.MethodPost, "/classify", `{"code": 0, "message": "ok"}`).
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectJSONBranch("category", "InterfaceError"),
			iffy.ExpectJSONBranch("code", "0"),
		)
	tester.AddCall("malformedBody", http.MethodPost, "/classify", `{"code": "ten"`).
		Checkers(iffy.ExpectStatus(400))

	tester.Run()
}

func TestTable(t *testing.T) {
	tester := iffy.NewTester(t, hdl)

	tester.AddCall("listTable", http.MethodGet, "/table", "").
		Checkers(
			iffy.ExpectStatus(200),
			iffy.ExpectListLength(dberrors.CurrentTable().Len()),
		)

	tester.Run()
}

func TestYAMLRendering(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(`{"code": 1264, "message": "Out of range value"}`))
	req.Header.Set("Accept", "application/x-yaml")
	rec := httptest.NewRecorder()
	hdl.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))

	var out struct {
		Category  string   `json:"category"`
		Code      int      `json:"code"`
		Ancestors []string `json:"ancestors"`
	}
	require.Nil(t, yaml.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "DataError", out.Category)
	assert.Equal(t, 1264, out.Code)
	assert.Equal(t, []string{"DatabaseError", "Error", "MySQLError"}, out.Ancestors)
}

func TestClassifyMetrics(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(`{"code": 1289}`))
	hdl.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	hdl.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `mysqlerr_classified_errors_total{category="NotSupportedError"}`)
	assert.Contains(t, body, fmt.Sprintf(`mysqlerr_http_request_duration_seconds_count{method="POST",route="/classify",status="%d"}`, 200))
}
