package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/apps/api/echo"
	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/notification"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/suggest"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/email"
	"github.com/trezcool/ujumbe/services/events"
	"github.com/trezcool/ujumbe/services/storage"
	"github.com/trezcool/ujumbe/storage/database/inmem"
	"github.com/trezcool/ujumbe/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

type fixture struct {
	conf      *core.Config
	app       *echoapi.Server
	usrRepo   user.Repository
	clsRepo   class.Repository
	fileRepo  file.Repository
	mailSvc   *emailsvc.ConsoleServiceMock
	publisher *eventsvc.Recorder
	settings  setting.Service
	messages  message.Service
}

func setup(t *testing.T) fixture {
	conf := testutil.Config(t)
	logger := testutil.Logger(conf)
	validate, translator := testutil.Validator()
	user.LoadCommonPasswords(logger)

	// set up DB & repos
	db := inmemdb.Open()
	f := fixture{
		conf:      conf,
		usrRepo:   inmemdb.NewUserRepository(db),
		clsRepo:   inmemdb.NewClassRepository(db),
		fileRepo:  inmemdb.NewFileRepository(db),
		mailSvc:   testutil.MailService(conf, logger),
		publisher: eventsvc.NewRecorder(),
	}
	storage, err := storagesvc.NewDiskStorage(conf.Storage.Dir)
	require.NoError(t, err)

	// set up services
	usrSvc := user.NewService(f.usrRepo, f.mailSvc, conf)
	clsSvc := class.NewService(f.clsRepo, usrSvc)
	f.settings = setting.NewService(inmemdb.NewSettingRepository(db), nil, logger)
	fileSvc := file.NewService(f.fileRepo, storage, f.settings, conf)
	f.messages = message.NewService(inmemdb.NewMessageRepository(db), usrSvc, clsSvc, fileSvc, f.publisher, logger)
	notifSvc := notification.NewService(inmemdb.NewNotificationRepository(db), usrSvc, clsSvc, f.mailSvc, f.publisher, logger)
	suggestSvc := suggest.NewService(suggest.DefaultClassifier(), nil, f.settings, logger, conf)

	// set up server
	f.app = echoapi.NewServer(echoapi.Deps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		UserSvc:         usrSvc,
		ClassSvc:        clsSvc,
		MessageSvc:      f.messages,
		NotificationSvc: notifSvc,
		SettingSvc:      f.settings,
		FileSvc:         fileSvc,
		SuggestSvc:      suggestSvc,
	})
	return f
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newUploadRequest sends content as the multipart "file" field.
func newUploadRequest(t *testing.T, path, token, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func getToken(t *testing.T, conf *core.Config, usr user.User) string {
	claims := echoapi.GetUserClaims(conf, usr)
	token, err := echoapi.GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "code; body %s", rec.Body.String())
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
