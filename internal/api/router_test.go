package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/skyup-digital/skyup-api/internal/api/v1"
	"github.com/skyup-digital/skyup-api/internal/auth"
	"github.com/skyup-digital/skyup-api/internal/cache"
	"github.com/skyup-digital/skyup-api/internal/domain/receipt"
	"github.com/skyup-digital/skyup-api/internal/service"
	"github.com/skyup-digital/skyup-api/internal/testutil"
	"github.com/skyup-digital/skyup-api/internal/types"
	"github.com/stretchr/testify/suite"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	s.BaseServiceTestSuite.SetupSuite()
	gin.SetMode(gin.TestMode)
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.router = s.newRouter()
}

// newRouter wires the handlers against the suite stores and current config.
func (s *RouterSuite) newRouter() *gin.Engine {
	cfg := s.GetConfig()
	log := s.GetLogger()
	provider, err := auth.NewProvider(cfg)
	s.Require().NoError(err)

	stores := s.GetStores()
	params := service.NewServiceParams(
		log, cfg, s.GetDB(), s.GetS3(), nil, provider,
		stores.ReceiptRepo, stores.JobApplicationRepo, stores.ContactRepo,
	)

	handlers := Handlers{
		Health:         v1.NewHealthHandler(nil, log),
		Auth:           v1.NewAuthHandler(service.NewAuthService(params), log),
		Receipt:        v1.NewReceiptHandler(service.NewReceiptService(params), log),
		JobApplication: v1.NewJobApplicationHandler(service.NewJobApplicationService(params), log),
		Contact:        v1.NewContactHandler(service.NewContactService(params), log),
		Resume:         v1.NewResumeHandler(service.NewResumeService(params), cfg.Storage.MaxUploadBytes, log),
	}

	return NewRouter(handlers, RouterParams{
		Config:       cfg,
		Logger:       log,
		AuthProvider: provider,
		Cache:        cache.NewInMemoryCache(log),
		Sentry:       nil,
	})
}

func (s *RouterSuite) serve(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var body map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func (s *RouterSuite) jsonRequest(method, path string, payload any, token string) *http.Request {
	var buf bytes.Buffer
	if payload != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func (s *RouterSuite) login() string {
	w, body := s.serve(s.jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testutil.TestAdminEmail,
		"password": testutil.TestAdminPassword,
	}, ""))
	s.Require().Equal(http.StatusOK, w.Code)

	token, ok := body["token"].(string)
	s.Require().True(ok)
	return token
}

func (s *RouterSuite) financialYear() string {
	loc, err := time.LoadLocation(s.GetConfig().Invoice.Timezone)
	s.Require().NoError(err)
	return receipt.FinancialYear(time.Now().In(loc))
}

func (s *RouterSuite) TestHealth() {
	w, body := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", body["status"])
}

func (s *RouterSuite) TestUnknownRoute() {
	w, body := s.serve(httptest.NewRequest(http.MethodGet, "/nope", nil))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(false, body["success"])
}

func (s *RouterSuite) TestProtectedRoutesRequireToken() {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/contacts"},
		{http.MethodGet, "/receipts"},
		{http.MethodPost, "/receipt"},
		{http.MethodGet, "/api/last-invoice"},
		{http.MethodGet, "/api/auth/verify"},
		{http.MethodPost, "/api/auth/logout"},
	}

	for _, route := range routes {
		s.Run(route.method+route.path, func() {
			w, body := s.serve(s.jsonRequest(route.method, route.path, nil, ""))
			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal("Authentication token is required", body["message"])

			w, body = s.serve(s.jsonRequest(route.method, route.path, nil, "not-a-token"))
			s.Equal(http.StatusForbidden, w.Code)
			s.Equal("Invalid or expired token", body["message"])
		})
	}
}

func (s *RouterSuite) TestLogin() {
	w, body := s.serve(s.jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testutil.TestAdminEmail,
		"password": "wrong",
	}, ""))
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password", body["message"])

	token := s.login()

	w, body = s.serve(s.jsonRequest(http.MethodGet, "/api/auth/verify", nil, token))
	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["valid"])
	s.Equal(testutil.TestAdminSubjectID, body["subject_id"])

	w, body = s.serve(s.jsonRequest(http.MethodPost, "/api/auth/logout", nil, token))
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Logged out successfully", body["message"])
}

func (s *RouterSuite) TestLoginThrottledAfterBurst() {
	burst := s.GetConfig().Auth.LoginRateLimit.Burst
	bad := map[string]string{"email": testutil.TestAdminEmail, "password": "wrong"}

	for i := 0; i < burst; i++ {
		w, _ := s.serve(s.jsonRequest(http.MethodPost, "/api/auth/login", bad, ""))
		s.Equal(http.StatusUnauthorized, w.Code)
	}

	w, body := s.serve(s.jsonRequest(http.MethodPost, "/api/auth/login", bad, ""))
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal("Too many login attempts, please try again later", body["message"])
	s.NotEmpty(w.Header().Get("Retry-After"))
}

func (s *RouterSuite) badLogin(forwardedFor string) int {
	req := s.jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testutil.TestAdminEmail,
		"password": "wrong",
	}, "")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w, _ := s.serve(req)
	return w.Code
}

func (s *RouterSuite) TestLoginThrottleIgnoresForwardedForFromUntrustedPeer() {
	burst := s.GetConfig().Auth.LoginRateLimit.Burst

	for i := 0; i < burst; i++ {
		s.Equal(http.StatusUnauthorized, s.badLogin(fmt.Sprintf("203.0.113.%d", i+1)))
	}

	// a fresh forwarded address per attempt must not reset the budget
	s.Equal(http.StatusTooManyRequests, s.badLogin("203.0.113.200"))
	s.Equal(http.StatusTooManyRequests, s.badLogin("198.51.100.7"))
}

func (s *RouterSuite) TestLoginThrottleKeysOnForwardedForFromTrustedProxy() {
	s.GetConfig().Server.TrustedProxies = []string{"192.0.2.1"}
	s.router = s.newRouter()
	burst := s.GetConfig().Auth.LoginRateLimit.Burst

	for i := 0; i < burst; i++ {
		s.Equal(http.StatusUnauthorized, s.badLogin("203.0.113.10"))
	}
	s.Equal(http.StatusTooManyRequests, s.badLogin("203.0.113.10"))

	// another client behind the same proxy has its own budget
	s.Equal(http.StatusUnauthorized, s.badLogin("203.0.113.11"))
}

func (s *RouterSuite) TestReceiptFlow() {
	token := s.login()
	fy := s.financialYear()

	payload := map[string]any{
		"client_name": "Acme Traders",
		"amount":      "2500",
		"igst_rate":   18,
	}

	w, body := s.serve(s.jsonRequest(http.MethodPost, "/receipt", payload, token))
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal("SDS/001/"+fy, body["invoice_no"])
	s.Equal("Receipt created successfully", body["message"])

	created := body["receipt"].(map[string]any)
	s.Equal("450", created["tax_amount"])
	s.Equal("2950", created["total_amount"])
	s.Equal(testutil.TestAdminEmail, created["created_by"])

	w, body = s.serve(s.jsonRequest(http.MethodPost, "/receipt", payload, token))
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal("SDS/002/"+fy, body["invoice_no"])

	w, body = s.serve(s.jsonRequest(http.MethodGet, "/api/last-invoice", nil, token))
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(2, body["lastSerial"])
	s.Equal("SDS/003/"+fy, body["next_invoice_no"])

	w, body = s.serve(s.jsonRequest(http.MethodGet, "/receipts?limit=1", nil, token))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(body["items"], 1)
	s.EqualValues(2, body["pagination"].(map[string]any)["total"])
}

func (s *RouterSuite) TestCreateReceiptRejectsBadInput() {
	token := s.login()

	w, body := s.serve(s.jsonRequest(http.MethodPost, "/receipt", map[string]any{
		"client_name": "Acme Traders",
		"amount":      "0",
	}, token))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Amount must be greater than zero", body["message"])

	req := httptest.NewRequest(http.MethodPost, "/receipt", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	w, _ = s.serve(req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestJobApplicationForm() {
	form := url.Values{
		"jobTitle":       {"Backend Developer"},
		"first_name":     {"Asha"},
		"last_name":      {"Rao"},
		"email":          {"asha@example.com"},
		"mobile":         {"9876543210"},
		"street_address": {"12 MG Road"},
		"city":           {"Bengaluru"},
		"state":          {"Karnataka"},
		"zipcode":        {"560001"},
		"country":        {"India"},
	}

	req := httptest.NewRequest(http.MethodPost, "/add-users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w, body := s.serve(req)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Applied successfully", body["message"])

	form.Set("mobile", "98-76")
	req = httptest.NewRequest(http.MethodPost, "/add-users", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w, body = s.serve(req)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(body["details"], "mobile")

	w, body = s.serve(s.jsonRequest(http.MethodGet, "/users", nil, s.login()))
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(1, body["pagination"].(map[string]any)["total"])
}

func (s *RouterSuite) TestContact() {
	w, body := s.serve(s.jsonRequest(http.MethodPost, "/add-contact", map[string]any{
		"name":    "Ravi Kumar",
		"email":   "ravi@example.com",
		"mobile":  9123456789,
		"message": "Please call me back.",
	}, ""))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Submitted successfully", body["message"])

	w, body = s.serve(s.jsonRequest(http.MethodGet, "/contacts", nil, s.login()))
	s.Require().Equal(http.StatusOK, w.Code)
	items := body["items"].([]any)
	s.Require().Len(items, 1)
	s.Equal("9123456789", items[0].(map[string]any)["mobile"])
}

func (s *RouterSuite) uploadRequest(filename, contentType string, data []byte) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	s.Require().NoError(err)
	_, err = part.Write(data)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (s *RouterSuite) TestResumeUpload() {
	w, body := s.serve(s.uploadRequest("My CV.pdf", "application/pdf", samplePDF))
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Uploaded successfully", body["message"])
	s.Equal("My CV.pdf", body["originalname"])
	s.Equal("raw", body["resource_type"])

	key := body["public_id"].(string)
	s.True(strings.HasPrefix(key, "skyup/resumes/"))
	s.True(strings.HasSuffix(key, "-My-CV.pdf"))
	_, ok := s.GetS3().Object(key)
	s.True(ok)

	w, body = s.serve(s.uploadRequest("cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK\x03\x04rest")))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("File type not allowed", body["message"])

	req := httptest.NewRequest(http.MethodPost, "/resume", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w, body = s.serve(req)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No file uploaded", body["message"])
}

func (s *RouterSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/receipt", nil)
	req.Header.Set("Origin", "https://skyup.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("https://skyup.test", w.Header().Get("Access-Control-Allow-Origin"))
}
